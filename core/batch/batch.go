// Package batch drives the sanitize pipeline over a set of input paths,
// continuing past per-file failures and honoring cancellation between
// files.
package batch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/scrubaudio/mp3scrub/core"
	"github.com/scrubaudio/mp3scrub/core/sanitize"
)

// OutputSpec selects where sanitized files go. At most one field is set;
// all empty means the default sibling X.new.mp3 path.
type OutputSpec struct {
	File    string // single explicit output file (one input only)
	Dir     string // output directory, base name preserved
	Replace bool   // in-place replacement via .tmp/.old rotation
}

// resolve returns the output path for one input under this spec. In
// replace mode this is the scratch path the rotation later installs.
func (o OutputSpec) resolve(inPath string) string {
	switch {
	case o.Replace:
		return sanitize.TempPath(inPath)
	case o.File != "":
		return o.File
	case o.Dir != "":
		return filepath.Join(o.Dir, filepath.Base(inPath))
	default:
		return sanitize.DefaultOutputPath(inPath)
	}
}

// Stats summarizes a batch run.
type Stats struct {
	Total     int
	Processed int
	Skipped   int // already processed, or abandoned mid-file on cancel
	Failed    int
}

// ExpandArgs glob-expands explicit file arguments, preserving argument
// order. A pattern that matches nothing is kept verbatim so its open
// failure gets reported per file instead of being silently dropped.
func ExpandArgs(args []string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

// Run sanitizes each path in order. Per-file errors are reported and the
// batch moves on; once the cancellation flag is observed no further
// files are started, though the in-flight file finishes its own cleanup
// first.
func Run(rc *core.RunContext, p *core.Printer, paths []string, opts *core.SanitizeOptions, out OutputSpec) Stats {
	st := Stats{Total: len(paths)}

	for i, path := range paths {
		if rc.Cancelled() {
			p.PrintInfo("Interrupted; not starting further files")
			break
		}

		outPath := out.resolve(path)
		p.PrintDebug(fmt.Sprintf("[%d/%d] %s -> %s", i+1, st.Total, path, outPath))

		if opts.DryRun {
			p.PrintInfo(fmt.Sprintf("[dry] would sanitize %s -> %s", path, outPath))
			st.Processed++
			continue
		}

		err := sanitize.Sanitize(rc, path, outPath, opts)
		switch {
		case err == nil:
			st.Processed++
			p.PrintSuccess(path)
		case errors.Is(err, core.ErrAlreadyProcessed):
			st.Skipped++
			p.PrintInfo("Skip: " + err.Error())
		case errors.Is(err, core.ErrCancelled):
			st.Skipped++
			p.PrintInfo("Cancelled mid-file, partial output removed: " + path)
		default:
			st.Failed++
			core.PrintError(fmt.Sprintf("%s: %v", path, err))
		}
	}

	p.PrintInfo(fmt.Sprintf("Done: %d sanitized, %d skipped, %d failed",
		st.Processed, st.Skipped, st.Failed))
	return st
}
