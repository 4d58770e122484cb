package manifest

import "errors"

var (
	// ErrDigestMismatch indicates a rendered file whose payload no longer matches its entry.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrMalformed indicates a manifest file that cannot be decoded.
	ErrMalformed = errors.New("malformed manifest")
)
