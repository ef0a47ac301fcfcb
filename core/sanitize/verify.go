package sanitize

import (
	"errors"
	"fmt"
	"os"

	"github.com/tosone/minimp3"
)

// Verify decodes the file at path with a real MP3 decoder and reports
// whether it still yields audio. Mangling only touches the private and
// original header bits, so a failure here means the pipeline emitted a
// broken frame, not a broken tag.
func Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec, pcm, err := minimp3.DecodeFull(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if dec.SampleRate <= 0 || len(pcm) == 0 {
		return errors.New("no audio frames decoded")
	}
	return nil
}
