// internal/repository/account_repo.go
package repository

import (
	"context"

	"lastlogin/internal/domain"
)

// AccountResolver defines the interface to the system account database.
type AccountResolver interface {
	// UIDByName resolves a username to its numeric uid.
	// It returns util.ErrUnknownUser when the account does not exist.
	UIDByName(ctx context.Context, name string) (uint32, error)
	// NameByUID resolves a uid to its username.
	// It returns util.ErrUnknownUser when the account does not exist.
	NameByUID(ctx context.Context, uid uint32) (string, error)
	// Users lists every account in the database.
	Users(ctx context.Context) ([]domain.User, error)
}
