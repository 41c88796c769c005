package source

import "errors"

var (
	// ErrCancelled means the user backed out. It is never an I/O failure.
	ErrCancelled = errors.New("file selection cancelled")

	// ErrSourceUnavailable wraps any failure to read the chosen file.
	ErrSourceUnavailable = errors.New("file could not be read")

	// ErrNoSelection is returned by a Picker when nothing was chosen.
	ErrNoSelection = errors.New("no file selected")

	// ErrTooLarge means the file is over Options.MaxBytes.
	ErrTooLarge = errors.New("file too large")

	// ErrFileType means the extension is not in Options.AllowedExtensions.
	ErrFileType = errors.New("unsupported file type")
)
