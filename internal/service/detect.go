// internal/service/detect.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lastlogin/internal/config"
	"lastlogin/internal/repository"
	"lastlogin/internal/repository/lastlog"
	"lastlogin/internal/repository/utmp"
	"lastlogin/internal/util"
)

// DetectSource probes the configured database files and returns the
// first one that passes a trial read: the utmp paths in order, then the
// lastlog file. It returns util.ErrNoDatabase when nothing is usable.
func DetectSource(ctx context.Context, cfg config.Config, accounts repository.AccountResolver, logger *zap.Logger) (repository.LoginSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, path := range cfg.UtmpPathList() {
		src := utmp.NewSource(path, accounts)
		if src.Valid(ctx) {
			logger.Debug("using utmp database", zap.String("path", path))
			return src, nil
		}
	}
	layout, ok := lastlog.LayoutByName(cfg.LastlogLayout)
	if !ok {
		return nil, fmt.Errorf("unknown lastlog layout %q: %w", cfg.LastlogLayout, util.ErrInvalidInput)
	}
	src := lastlog.NewSource(cfg.LastlogPath, layout)
	if src.Valid(ctx) {
		logger.Debug("using lastlog database", zap.String("path", cfg.LastlogPath), zap.String("layout", layout.Name))
		return src, nil
	}
	return nil, util.ErrNoDatabase
}
