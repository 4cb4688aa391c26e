package catalog

import "errors"

// Sentinel errors for catalog validation.
var (
	// ErrMissingField indicates a stage or phase has an empty key or name.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateName indicates two stages share a display name.
	ErrDuplicateName = errors.New("duplicate stage name")
	// ErrDuplicateKey indicates two stages share a stable key.
	ErrDuplicateKey = errors.New("duplicate stage key")
	// ErrNegativeSLA indicates a stage with an SLA below zero days.
	ErrNegativeSLA = errors.New("negative SLA")
	// ErrDuplicatePhase indicates two phase definitions share a key.
	ErrDuplicatePhase = errors.New("duplicate phase key")
	// ErrUnknownFormat indicates a catalog file extension that is neither
	// TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown catalog file format")
)
