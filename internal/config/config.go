package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirName      = ".pantry"
	dataFileName = "pantry.json"
	credFileName = "credentials.json"
)

// Config holds the resolved settings. Flags win over env, env over defaults.
type Config struct {
	Dir       string // state directory, ~/.pantry by default
	DataFile  string
	CredsFile string
	Theme     string
}

// Flags are the raw root flag values; empty means "not set".
type Flags struct {
	File  string
	Theme string
}

// Resolve merges flags, PANTRY_* environment variables and defaults.
func Resolve(f Flags) (Config, error) {
	dir := strings.TrimSpace(os.Getenv("PANTRY_HOME"))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("home: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	c := Config{
		Dir:       dir,
		DataFile:  filepath.Join(dir, dataFileName),
		CredsFile: filepath.Join(dir, credFileName),
		Theme:     "classic",
	}
	if env := strings.TrimSpace(os.Getenv("PANTRY_FILE")); env != "" {
		c.DataFile = env
	}
	if env := strings.TrimSpace(os.Getenv("PANTRY_THEME")); env != "" {
		c.Theme = env
	}
	if f.File != "" {
		c.DataFile = f.File
	}
	if f.Theme != "" {
		c.Theme = f.Theme
	}
	return c, nil
}
