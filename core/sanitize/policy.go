// Package sanitize implements the frame-stream sanitization pipeline:
// per-frame keep/drop/mutate policy, the rewrite loop with cooperative
// cancellation, and the crash-safe in-place replacement rotation.
package sanitize

import (
	"github.com/scrubaudio/mp3scrub/core"
	"github.com/scrubaudio/mp3scrub/core/frame"
)

// Decision is the per-frame policy outcome.
type Decision int

const (
	DecisionKeep Decision = iota
	DecisionDrop
	DecisionKeepMutated
)

// Decide maps a frame's kind to its sanitize outcome. It is pure: same
// frame kind and options, same decision, no I/O, which is what makes
// the policy testable on its own.
//
// Invalid spans are not policy territory; whether they survive is owned
// by the scanner's skip-invalid setting, so they pass through here.
func Decide(f *frame.Frame, opts *core.SanitizeOptions) Decision {
	switch f.Kind {
	case frame.KindAudio:
		if opts.Mangle {
			return DecisionKeepMutated
		}
		return DecisionKeep
	case frame.KindRiff:
		return keepIf(opts.KeepRiff)
	case frame.KindID3:
		return keepIf(opts.KeepID3)
	case frame.KindAPE:
		return keepIf(opts.KeepAPE)
	case frame.KindMeta:
		return keepIf(opts.KeepMeta)
	default:
		return DecisionKeep
	}
}

func keepIf(keep bool) Decision {
	if keep {
		return DecisionKeep
	}
	return DecisionDrop
}
