package config

import "errors"

// ErrConfigLoadFailed indicates the tool configuration file exists but could
// not be read, parsed or validated.
var ErrConfigLoadFailed = errors.New("failed to load config")
