// lastlogin.go
//
// Package lastlogin reads the binary last-login databases kept by
// UNIX-like systems (the uid-indexed /var/log/lastlog file and the
// utmp/wtmp session files) and looks up the most recent login per
// account, by uid or by username.
//
// Basic usage:
//
//	rec, err := lastlogin.SearchUID(ctx, 1000)
//	rec, err := lastlogin.SearchUsername(ctx, "foo")
//
// Each call is stateless: it opens the database, performs the lookup and
// releases the handle, so results always reflect the current on-disk
// state and concurrent calls need no coordination.
package lastlogin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lastlogin/internal/config"
	"lastlogin/internal/domain"
	"lastlogin/internal/repository/passwd"
	"lastlogin/internal/service"
	"lastlogin/internal/util"
)

// Record is one account's last-login state.
type Record = domain.Record

// User is one entry of the system account database.
type User = domain.User

// Service performs last-login lookups against a fixed set of database
// files chosen at construction time.
type Service = service.LoginService

// Sentinel errors returned by the lookup operations. Any other error is
// an I/O failure with its cause wrapped.
var (
	ErrNotFound    = util.ErrNotFound
	ErrUnknownUser = util.ErrUnknownUser
	ErrNoDatabase  = util.ErrNoDatabase
)

// Layout names accepted by Options.Layout.
const (
	LayoutGlibc   = "glibc"   // 292-byte glibc struct lastlog (default)
	LayoutCompact = "compact" // 40-byte layout: 64-bit time + 32-byte host
)

// Options selects the database files to read. Zero-value fields fall
// back to the environment configuration and the classic system
// locations.
type Options struct {
	LastlogPath string
	UtmpPaths   []string
	PasswdPath  string
	Layout      string
	Logger      *zap.Logger
}

func (o Options) merge(cfg config.Config) config.Config {
	if o.LastlogPath != "" {
		cfg.LastlogPath = o.LastlogPath
	}
	if o.UtmpPaths != nil {
		cfg.UtmpPaths = strings.Join(o.UtmpPaths, ":")
	}
	if o.PasswdPath != "" {
		cfg.PasswdPath = o.PasswdPath
	}
	if o.Layout != "" {
		cfg.LastlogLayout = o.Layout
	}
	return cfg
}

// NewService wires a lookup service: it loads the environment
// configuration, applies the option overrides, probes the candidate
// database files and returns a service bound to the first usable one.
func NewService(ctx context.Context, opts Options) (Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	cfg = opts.merge(cfg)

	logger := opts.Logger
	if logger == nil {
		logger = util.GetLogger()
	}
	accounts := passwd.NewResolver(cfg.PasswdPath)
	source, err := service.DetectSource(ctx, cfg, accounts, logger)
	if err != nil {
		return nil, err
	}
	return service.NewLoginService(source, accounts, logger), nil
}

// SearchUID returns the login record for a numeric uid from the system
// databases. It returns ErrNotFound when no record exists for the uid.
func SearchUID(ctx context.Context, uid uint32) (*Record, error) {
	svc, err := NewService(ctx, Options{})
	if err != nil {
		return nil, err
	}
	return svc.LookupUID(ctx, uid)
}

// SearchUsername resolves name against the account database and returns
// its login record. It returns ErrUnknownUser for names the account
// database cannot resolve, without reading the login database at all.
func SearchUsername(ctx context.Context, name string) (*Record, error) {
	svc, err := NewService(ctx, Options{})
	if err != nil {
		return nil, err
	}
	return svc.LookupUsername(ctx, name)
}

// IterAccounts returns one record per account in the account database,
// including accounts that have never logged in.
func IterAccounts(ctx context.Context) ([]Record, error) {
	svc, err := NewService(ctx, Options{})
	if err != nil {
		return nil, err
	}
	return svc.IterAccounts(ctx)
}

// SearchSelf returns the login record for the calling user.
func SearchSelf(ctx context.Context) (*Record, error) {
	svc, err := NewService(ctx, Options{})
	if err != nil {
		return nil, err
	}
	return svc.LookupSelf(ctx)
}
