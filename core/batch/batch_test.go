package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scrubaudio/mp3scrub/core"
	"github.com/scrubaudio/mp3scrub/core/sanitize"
)

// audioOnlyMP3 is two bare MPEG1 Layer III frames, enough to drive the
// pipeline without any metadata containers.
func audioOnlyMP3() []byte {
	f := make([]byte, 417)
	f[0], f[1], f[2], f[3] = 0xFF, 0xFB, 0x90, 0x40
	return append(append([]byte{}, f...), f...)
}

func writeTrack(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, audioOnlyMP3(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietPrinter(t *testing.T) *core.Printer {
	t.Helper()
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { devNull.Close() })
	return &core.Printer{Writer: devNull}
}

func keepAllOptions() core.SanitizeOptions {
	return core.SanitizeOptions{KeepRiff: true, KeepMeta: true, KeepID3: true, KeepAPE: true}
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")
	missing := filepath.Join(dir, "missing.mp3")
	c := writeTrack(t, dir, "c.mp3")

	opts := keepAllOptions()
	st := Run(core.NewRunContext(), quietPrinter(t), []string{a, missing, c}, &opts, OutputSpec{})

	want := Stats{Total: 3, Processed: 2, Failed: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
	for _, in := range []string{a, c} {
		if _, err := os.Stat(sanitize.DefaultOutputPath(in)); err != nil {
			t.Errorf("no output for %s: %v", in, err)
		}
	}
}

func TestRunSkipsAlreadyProcessed(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")
	b := writeTrack(t, dir, "b.mp3")
	if err := os.WriteFile(sanitize.DefaultOutputPath(a), []byte("done"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := keepAllOptions()
	st := Run(core.NewRunContext(), quietPrinter(t), []string{a, b}, &opts, OutputSpec{})

	want := Stats{Total: 2, Processed: 1, Skipped: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
}

func TestRunPreCancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")

	rc := core.NewRunContext()
	rc.Cancel()
	opts := keepAllOptions()
	st := Run(rc, quietPrinter(t), []string{a}, &opts, OutputSpec{})

	if st != (Stats{Total: 1}) {
		t.Errorf("stats = %+v, want no files touched", st)
	}
	if _, err := os.Stat(sanitize.DefaultOutputPath(a)); !os.IsNotExist(err) {
		t.Error("cancelled batch still produced output")
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")

	opts := keepAllOptions()
	opts.DryRun = true
	st := Run(core.NewRunContext(), quietPrinter(t), []string{a}, &opts, OutputSpec{})

	if st.Processed != 1 {
		t.Errorf("Processed = %d, want 1", st.Processed)
	}
	if _, err := os.Stat(sanitize.DefaultOutputPath(a)); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

func TestOutputSpecResolve(t *testing.T) {
	tests := []struct {
		name string
		spec OutputSpec
		in   string
		want string
	}{
		{"default", OutputSpec{}, "/m/song.mp3", "/m/song.new.mp3"},
		{"explicit file", OutputSpec{File: "/out/clean.mp3"}, "/m/song.mp3", "/out/clean.mp3"},
		{"directory keeps base name", OutputSpec{Dir: "/out"}, "/m/song.mp3", "/out/song.mp3"},
		{"replace uses scratch path", OutputSpec{Replace: true}, "/m/song.mp3", "/m/song.mp3.tmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.resolve(tt.in); got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")
	b := writeTrack(t, dir, "b.mp3")

	got := ExpandArgs([]string{
		filepath.Join(dir, "*.mp3"),
		"no-such-file.mp3",
		a,
	})
	want := []string{a, b, "no-such-file.mp3", a}
	if len(got) != len(want) {
		t.Fatalf("got %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
