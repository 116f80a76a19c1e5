// internal/config/config.go
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Default database locations, matching the classic UNIX layout.
const (
	DefaultLastlogPath = "/var/log/lastlog"
	DefaultPasswdPath  = "/etc/passwd"
)

// DefaultUtmpPaths are probed in order during source detection.
var DefaultUtmpPaths = []string{"/var/run/utmp", "/var/log/utmp", "/var/log/wtmp"}

// Config holds all configuration for the login database reader.
// These values are loaded from environment variables.
type Config struct {
	LastlogPath   string `mapstructure:"LASTLOG_PATH"`
	UtmpPaths     string `mapstructure:"UTMP_PATHS"` // colon-separated probe list
	PasswdPath    string `mapstructure:"PASSWD_PATH"`
	LastlogLayout string `mapstructure:"LASTLOG_LAYOUT"` // "glibc" or "compact"
}

// UtmpPathList splits the colon-separated probe list, dropping empty
// elements.
func (c Config) UtmpPathList() []string {
	var paths []string
	for _, p := range strings.Split(c.UtmpPaths, ":") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// LoadConfig reads configuration from environment variables and an
// optional .env file in the given path. It uses Viper to bind the
// environment to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("LASTLOG_PATH", DefaultLastlogPath)
	viper.SetDefault("UTMP_PATHS", strings.Join(DefaultUtmpPaths, ":"))
	viper.SetDefault("PASSWD_PATH", DefaultPasswdPath)
	viper.SetDefault("LASTLOG_LAYOUT", "glibc")

	_ = viper.BindEnv("LASTLOG_PATH")
	_ = viper.BindEnv("UTMP_PATHS")
	_ = viper.BindEnv("PASSWD_PATH")
	_ = viper.BindEnv("LASTLOG_LAYOUT")

	// The .env file is optional; environment values alone are enough.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
