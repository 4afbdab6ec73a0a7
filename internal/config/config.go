package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrValidationFailed = errors.New("validation failed")

type Config struct {
	WatchPath    string
	ExcludePaths []string
	Debug        bool
	Poll         bool
}

func (c *Config) Validate() error {
	if c.WatchPath == "" {
		return fmt.Errorf("%w: watch directory is required", ErrValidationFailed)
	}

	for _, pattern := range c.ExcludePaths {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad exclude pattern %q", ErrValidationFailed, pattern)
		}
	}

	return nil
}
