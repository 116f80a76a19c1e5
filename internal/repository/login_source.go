// internal/repository/login_source.go
package repository

import (
	"context"

	"lastlogin/internal/domain"
)

// LoginSource defines the interface for last-login database lookups.
type LoginSource interface {
	// LookupUID retrieves the login record stored for the given uid.
	// It returns util.ErrNotFound when the database holds no record for it.
	LookupUID(ctx context.Context, uid uint32) (*domain.Record, error)
	// Accounts produces one record per supplied account, synthesizing a
	// never-logged-in record for accounts the database does not cover.
	Accounts(ctx context.Context, users []domain.User) ([]domain.Record, error)
	// Valid reports whether the backing file looks like a database this
	// source can read. Used during source detection.
	Valid(ctx context.Context) bool
}
