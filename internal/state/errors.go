package state

import "errors"

var (
	// ErrUnsupportedSchema indicates a record written by a newer version.
	ErrUnsupportedSchema = errors.New("unsupported state schema version")

	// ErrCorrupt indicates a record that parsed but violates the model.
	ErrCorrupt = errors.New("state record is corrupt")
)
