// Package core defines the shared types, run context, and output
// facilities for mp3scrub.
package core

import (
	"fmt"
	"strings"
)

// SanitizeOptions controls one sanitize run. A value is built once from
// CLI input, then shared read-only across every per-file pipeline
// invocation in the batch.
type SanitizeOptions struct {
	// Keep* select which metadata containers survive into the output.
	KeepRiff bool // RIFF wrapper chunks
	KeepMeta bool // generic metadata blocks (Lyrics3)
	KeepID3  bool // ID3v1 and ID3v2 tags
	KeepAPE  bool // APE tag frames

	// Mangle randomizes the private and original header bits of every
	// audio frame, changing the file's content hash without audible
	// effect.
	Mangle bool

	// ReplaceOriginal overwrites the input path via the .tmp/.old
	// rotation instead of writing to a distinct output path.
	ReplaceOriginal bool

	// Verify decodes the finished output to confirm it still plays.
	Verify bool

	DryRun  bool
	Verbose bool
}

// DefaultOptions returns the options matching the default CLI drop list
// {riff}: RIFF wrappers are dropped, everything else is kept.
func DefaultOptions() SanitizeOptions {
	return SanitizeOptions{
		KeepRiff: false,
		KeepMeta: true,
		KeepID3:  true,
		KeepAPE:  true,
	}
}

// ApplyDropList parses a comma-separated drop list ("riff,id3,ape") and
// clears the matching Keep* options. An empty list leaves opts untouched.
func ApplyDropList(opts *SanitizeOptions, list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	// Start from everything kept so the list alone decides what is
	// dropped, independent of the defaults.
	opts.KeepRiff = true
	opts.KeepID3 = true
	opts.KeepAPE = true
	for _, item := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "riff":
			opts.KeepRiff = false
		case "id3":
			opts.KeepID3 = false
		case "ape":
			opts.KeepAPE = false
		case "":
			// tolerate stray commas
		default:
			return fmt.Errorf("unknown drop category %q (use riff, id3, ape)", item)
		}
	}
	return nil
}

// TagField represents a single metadata key-value pair found in a file.
type TagField struct {
	Key      string // Canonical field name (e.g. "Artist", "Title")
	Value    string // String representation of the value
	Category string // Category label (e.g. "ID3v2.3", "ID3v2 frames")
}

// TagReport holds all metadata discovered in a single file by inspect.
type TagReport struct {
	FilePath string
	Format   string // Human-readable format name
	Warnings []string
	Fields   []TagField
}

// Summary returns a short string of key fields for quick display.
func (r *TagReport) Summary() string {
	for _, f := range r.Fields {
		if f.Key == "Title" || f.Key == "Artist" {
			return f.Key + ": " + f.Value
		}
	}
	return r.Format
}
