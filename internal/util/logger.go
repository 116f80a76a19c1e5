// internal/util/logger.go
package util

import "go.uber.org/zap"

var logger *zap.Logger

// InitLogger initializes the global structured logger.
// It sets up a production JSON configuration.
func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the initialized global logger.
func GetLogger() *zap.Logger {
	if logger == nil {
		InitLogger() // Initialize if not already initialized (should be called explicitly at app start)
	}
	return logger
}
