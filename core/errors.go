package core

import "errors"

// Per-file error taxonomy. All of these are local to the file that
// raised them; the batch driver continues past every one of them.
var (
	// ErrUnsupportedFormat means the input lacks a .mp3 extension. It is
	// raised before any I/O happens.
	ErrUnsupportedFormat = errors.New("not an .mp3 file")

	// ErrAlreadyProcessed means the output path (or, in replace mode,
	// the .old backup) already exists and the file is skipped to avoid
	// double-processing on a re-run.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrCancelled means the user requested an abort mid-file. The
	// partial output has been removed and the input is untouched.
	ErrCancelled = errors.New("cancelled")
)
