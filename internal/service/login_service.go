// internal/service/login_service.go
package service

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"lastlogin/internal/domain"
	"lastlogin/internal/repository"
	"lastlogin/internal/util"
)

// LoginService defines the interface for last-login lookups.
type LoginService interface {
	// LookupUID returns the login record for a numeric uid, or
	// util.ErrNotFound when the database has none.
	LookupUID(ctx context.Context, uid uint32) (*domain.Record, error)
	// LookupUsername resolves the account name first and then delegates
	// to the uid lookup. An unresolvable name yields util.ErrUnknownUser
	// without touching the login database.
	LookupUsername(ctx context.Context, name string) (*domain.Record, error)
	// IterAccounts returns one record per account in the account
	// database, including never-logged-in accounts.
	IterAccounts(ctx context.Context) ([]domain.Record, error)
	// LookupSelf looks up the calling user.
	LookupSelf(ctx context.Context) (*domain.Record, error)
}

// loginService implements the LoginService interface.
type loginService struct {
	source   repository.LoginSource
	accounts repository.AccountResolver
	logger   *zap.Logger
}

// NewLoginService creates a new instance of LoginService.
func NewLoginService(source repository.LoginSource, accounts repository.AccountResolver, logger *zap.Logger) LoginService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loginService{source: source, accounts: accounts, logger: logger}
}

// LookupUID delegates to the login source and fills in the username
// best-effort. A missing record is an expected outcome and is returned
// as util.ErrNotFound without logging.
func (s *loginService) LookupUID(ctx context.Context, uid uint32) (*domain.Record, error) {
	rec, err := s.source.LookupUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		s.logger.Warn("login database read failed", zap.Uint32("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	if rec.Username == "" {
		if name, err := s.accounts.NameByUID(ctx, uid); err == nil {
			rec.Username = name
		}
	}
	return rec, nil
}

// LookupUsername resolves name through the account database before any
// file access, then propagates the uid lookup result unchanged.
func (s *loginService) LookupUsername(ctx context.Context, name string) (*domain.Record, error) {
	uid, err := s.accounts.UIDByName(ctx, name)
	if err != nil {
		if util.IsError(err, util.ErrUnknownUser) {
			return nil, util.ErrUnknownUser
		}
		return nil, fmt.Errorf("resolve username %q: %w", name, err)
	}
	rec, err := s.source.LookupUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		s.logger.Warn("login database read failed", zap.String("username", name), zap.Uint32("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	rec.Username = name
	return rec, nil
}

// IterAccounts lists every account and collects its login state.
func (s *loginService) IterAccounts(ctx context.Context) ([]domain.Record, error) {
	users, err := s.accounts.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return s.source.Accounts(ctx, users)
}

// LookupSelf resolves the calling user, preferring the real uid over the
// USER environment variable.
func (s *loginService) LookupSelf(ctx context.Context) (*domain.Record, error) {
	if uid := os.Getuid(); uid >= 0 {
		return s.LookupUID(ctx, uint32(uid))
	}
	if name := os.Getenv("USER"); name != "" {
		return s.LookupUsername(ctx, name)
	}
	return nil, util.ErrUnknownUser
}
