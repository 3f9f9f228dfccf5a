package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// defaultDotEnvFile is read from the working directory when present.
const defaultDotEnvFile = ".env"

// loadDotEnv reads paths (".env" when none are given) into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func loadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{defaultDotEnvFile}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading %s: %w", p, err)
		}
	}
	return nil
}
