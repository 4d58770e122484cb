package config

import "errors"

var (
	// ErrMissingPath indicates that a required input file was not configured.
	ErrMissingPath = errors.New("missing required path")
	// ErrInvalidValue indicates a configuration value outside its valid range.
	ErrInvalidValue = errors.New("invalid configuration value")
	// ErrInvalidSfxList indicates a malformed name=path list.
	ErrInvalidSfxList = errors.New("invalid sfx list")
)
