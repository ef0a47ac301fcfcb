package sanitize

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrubaudio/mp3scrub/core"
	"github.com/scrubaudio/mp3scrub/core/frame"
)

// TempPath returns the scratch path a replace-mode run writes to before
// rotating it over the original.
func TempPath(path string) string { return path + ".tmp" }

// BackupPath returns the path the original is parked at by a rotation.
func BackupPath(path string) string { return path + ".old" }

// DefaultOutputPath returns the sibling output path used when no
// explicit output was selected: X.mp3 becomes X.new.mp3.
func DefaultOutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".new.mp3"
}

// Sanitize rewrites the MP3 at inPath into outPath according to opts.
//
// The file is skipped (ErrAlreadyProcessed) when the path relevant to
// the selected mode already exists: the .old backup in replace mode, the
// output path otherwise. On cancellation the partial output is deleted
// and the input left untouched; every other failure likewise removes the
// partial output. Errors are per-file; the caller decides whether the
// batch continues.
func Sanitize(rc *core.RunContext, inPath, outPath string, opts *core.SanitizeOptions) error {
	if !core.IsMP3Path(inPath) {
		return fmt.Errorf("%s: %w", inPath, core.ErrUnsupportedFormat)
	}

	// Idempotent-skip: only the path the selected mode will create is
	// checked, so a stray .old never blocks a to-directory run and vice
	// versa.
	guard := outPath
	if opts.ReplaceOriginal {
		guard = BackupPath(inPath)
	}
	if _, err := os.Stat(guard); err == nil {
		return fmt.Errorf("%s exists: %w", guard, core.ErrAlreadyProcessed)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	sc, err := frame.NewScanner(in, scannerOptions(opts))
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("read input: %w", err)
	}

	if _, err := copyFrames(rc, sc, out, opts); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("close output: %w", err)
	}

	if err := copyFileAttrs(inPath, outPath); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("copy file attributes: %w", err)
	}

	if opts.Verify {
		if err := Verify(outPath); err != nil {
			return fmt.Errorf("verify %s: %w", outPath, err)
		}
	}

	if opts.ReplaceOriginal {
		return Rotate(inPath, outPath)
	}
	return nil
}

// scannerOptions maps the keep options onto the scanner's emit flags, so
// dropped categories are elided upstream. Decide applies the same policy
// again downstream; the output is identical under either layering.
func scannerOptions(opts *core.SanitizeOptions) frame.Options {
	return frame.Options{
		SkipInvalid: true,
		EmitRiff:    opts.KeepRiff,
		EmitMeta:    opts.KeepMeta,
		EmitID3:     opts.KeepID3,
		EmitAPE:     opts.KeepAPE,
	}
}

// copyFrames drives the scanner and writes surviving frames to w in
// stream order. The cancellation flag is checked exactly once per frame,
// after its write: a frame's byte view, once begun, is always written in
// full. Returns the number of frames written.
func copyFrames(rc *core.RunContext, sc *frame.Scanner, w io.Writer, opts *core.SanitizeOptions) (int, error) {
	written := 0
	for sc.Scan() {
		f := sc.Frame()
		switch Decide(f, opts) {
		case DecisionDrop:
			continue
		case DecisionKeepMutated:
			f.Header.Private = rand.Intn(2) == 1
			f.Header.Original = rand.Intn(2) == 1
			f.CommitHeader()
		}
		if _, err := w.Write(f.Raw); err != nil {
			return written, fmt.Errorf("write frame at offset %d: %w", f.Offset, err)
		}
		written++
		if rc.Cancelled() {
			return written, core.ErrCancelled
		}
	}
	return written, nil
}
