package auth

import "context"

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, fullName, email, username, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
}
