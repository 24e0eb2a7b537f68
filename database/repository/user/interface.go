// File: database/repository/user/interface.go
package userRepo

import (
	"context"
	"errors"

	"clinicdesk/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	// GetByUIDs returns the users found, keyed by uid. Missing uids are skipped.
	GetByUIDs(ctx context.Context, uids []string) (map[string]models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
}
