package profile

import (
	"context"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpclient"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) port.ProfileService {
	return &client{
		http: httpclient.New(strings.TrimRight(baseURL, "/"), timeout, log.WithField("component", "profile")),
	}
}

func (c *client) GetUser(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, &domain.ValidationError{Field: "userId", Reason: "must be positive"}
	}

	var user domain.User
	if err := c.http.Do(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("http.Do[%d]: %w", id, err)
	}

	if user.ID != id {
		return domain.User{}, fmt.Errorf("user id mismatch: want %d, got %d: %w", id, user.ID, domain.ErrNetworkFailure)
	}

	if strings.TrimSpace(user.Image) == "" {
		user.Image = domain.DefaultProfileImage
	}

	return user, nil
}

// UpdateUser validates before any network call; the update only counts when the service echoes the same user id.
func (c *client) UpdateUser(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, &domain.ValidationError{Field: "userId", Reason: "must be positive"}
	}

	if err := update.Validate(); err != nil {
		return domain.User{}, err
	}

	if strings.TrimSpace(update.Image) == "" {
		update.Image = domain.DefaultProfileImage
	}

	var user domain.User
	if err := c.http.Do(ctx, http.MethodPut, userPath(id), update, &user); err != nil {
		return domain.User{}, fmt.Errorf("http.Do[%d]: %w", id, err)
	}

	if user.ID != id {
		return domain.User{}, fmt.Errorf("user id mismatch: want %d, got %d: %w", id, user.ID, domain.ErrNetworkFailure)
	}

	return user, nil
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}
