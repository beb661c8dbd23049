package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/MolchanovArt/exocortex/internal/constants"
)

// Config holds environment-driven application configuration. Flags take
// precedence over these values; they exist so that scripted use does not need
// to repeat paths on every invocation.
type Config struct {
	DBPath       string // path to the SQLite/JSON store
	DBConnection string // PostgreSQL connection string, if set
	ProfilePath  string // path to the user profile file
	Debug        bool
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Missing values fall back to
// defaults under the user config directory.
func Load() Config {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := Config{
		DBPath:       os.Getenv("EXOCORTEX_DB_PATH"),
		DBConnection: os.Getenv("EXOCORTEX_DB_CONNECTION"),
		ProfilePath:  os.Getenv("EXOCORTEX_PROFILE_PATH"),
		Debug:        os.Getenv("EXOCORTEX_DEBUG") != "",
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(DefaultConfigDir(), constants.AppName+".db")
	}
	if cfg.ProfilePath == "" {
		cfg.ProfilePath = filepath.Join(DefaultConfigDir(), "user_profile.json")
	}

	return cfg
}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "." + constants.AppName
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, constants.AppName)
}
