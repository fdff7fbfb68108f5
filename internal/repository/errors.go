package repository

import (
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
)

var errEmptyKey = fmt.Errorf("key is empty")

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
