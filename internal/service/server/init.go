package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/oshokin/jeopardy/internal/config"
)

// ErrConfigExists is returned when InitConfig would overwrite a file without force.
var ErrConfigExists = errors.New("settings file already exists")

// InitConfig writes the default settings to path, or to the default filename when empty.
func InitConfig(path string, force bool) (string, error) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := config.Save(path, config.Default()); err != nil {
		return "", err
	}

	return path, nil
}
