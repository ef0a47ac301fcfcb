package core

import (
	"bytes"
	"path/filepath"
	"strings"
)

// IsMP3Path reports whether path carries a .mp3 extension,
// case-insensitively. This is the pipeline's no-I/O format precheck;
// anything else is rejected before a stream is opened.
func IsMP3Path(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// SniffMP3 inspects the leading bytes of a file for the structures an
// MP3 stream can legitimately start with. Used by inspect to warn when a
// .mp3 file does not look like MPEG audio; the sanitize pipeline itself
// trusts the frame scanner to sort the content out.
func SniffMP3(b []byte) bool {
	switch {
	// ID3v2 tag
	case bytes.HasPrefix(b, []byte("ID3")):
		return true
	// MPEG frame sync: FF Ex / FF Fx
	case len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0:
		return true
	// RIFF-wrapped MPEG audio: RIFF????WAVE
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE")):
		return true
	// APE tag at the front of the stream
	case bytes.HasPrefix(b, []byte("APETAGEX")):
		return true
	}
	return false
}
