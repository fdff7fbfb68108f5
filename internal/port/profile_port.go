package port

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProfileService interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error)
}
