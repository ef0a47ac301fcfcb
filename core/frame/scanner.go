package frame

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Options configures a Scanner. The Emit* flags let the scanner itself
// elide whole metadata categories; callers may equally keep them all and
// filter downstream. The surviving output is the same either way.
type Options struct {
	// SkipInvalid discards byte spans no recognizer claims instead of
	// emitting them as KindInvalid frames.
	SkipInvalid bool

	EmitRiff bool
	EmitMeta bool
	EmitID3  bool
	EmitAPE  bool
}

// PermissiveOptions returns a configuration that emits every category
// and passes invalid spans through, so the emitted frames concatenate
// back to the exact input.
func PermissiveOptions() Options {
	return Options{EmitRiff: true, EmitMeta: true, EmitID3: true, EmitAPE: true}
}

// Scanner lazily splits an MP3 byte stream into frames. It is finite and
// one-shot: once Scan returns false the sequence is exhausted, and
// re-reading requires reopening the input and building a new Scanner.
type Scanner struct {
	data    []byte
	pos     int
	opts    Options
	frame   *Frame
	pending *Frame
}

// NewScanner consumes r in full and returns a scanner over its bytes.
// The read error, if any, is the only error the scanner can produce;
// classification itself never fails, it degrades to invalid spans.
func NewScanner(r io.Reader, opts Options) (*Scanner, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Scanner{data: data, opts: opts}, nil
}

// Scan advances to the next emitted frame. It returns false when the
// stream is exhausted.
func (s *Scanner) Scan() bool {
	if s.pending != nil {
		s.frame, s.pending = s.pending, nil
		return true
	}

	invalidStart := -1
	for s.pos < len(s.data) {
		f, n := s.classifyAt(s.pos)
		if n == 0 {
			if invalidStart < 0 {
				invalidStart = s.pos
			}
			s.pos++
			continue
		}
		s.pos += n

		keep := s.emits(f.Kind)
		if invalidStart >= 0 && !s.opts.SkipInvalid {
			inv := &Frame{
				Kind:   KindInvalid,
				Offset: int64(invalidStart),
				Raw:    s.data[invalidStart : s.pos-n],
			}
			if keep {
				s.pending = f
			}
			s.frame = inv
			return true
		}
		invalidStart = -1
		if !keep {
			continue
		}
		s.frame = f
		return true
	}

	if invalidStart >= 0 && !s.opts.SkipInvalid {
		s.frame = &Frame{
			Kind:   KindInvalid,
			Offset: int64(invalidStart),
			Raw:    s.data[invalidStart:],
		}
		return true
	}
	return false
}

// Frame returns the frame produced by the last successful Scan. The raw
// view stays valid for the scanner's lifetime.
func (s *Scanner) Frame() *Frame { return s.frame }

func (s *Scanner) emits(k Kind) bool {
	switch k {
	case KindRiff:
		return s.opts.EmitRiff
	case KindID3:
		return s.opts.EmitID3
	case KindAPE:
		return s.opts.EmitAPE
	case KindMeta:
		return s.opts.EmitMeta
	default:
		return true
	}
}

// ─── Recognizers ─────────────────────────────────────────────────────────────
// Each recognizer inspects the stream at pos and returns the frame plus
// its byte length, or (nil, 0) when the structure is malformed or
// truncated, in which case the bytes fall into an invalid span.

var (
	riffMagic = []byte("RIFF")
	waveMagic = []byte("WAVE")
	dataMagic = []byte("data")
)

// Sanity cap for declared tag and chunk sizes. Anything larger than this
// in a real-world MP3 is a corrupt length field.
const maxDeclaredSize = 1 << 28

func (s *Scanner) classifyAt(pos int) (*Frame, int) {
	b := s.data[pos:]
	switch {
	case bytes.HasPrefix(b, []byte("ID3")):
		return s.id3v2At(pos)
	case bytes.HasPrefix(b, []byte("TAG")):
		return s.id3v1At(pos)
	case bytes.HasPrefix(b, []byte("APETAGEX")):
		return s.apeAt(pos)
	case len(b) >= 12 && bytes.Equal(b[0:4], riffMagic) && bytes.Equal(b[8:12], waveMagic):
		return s.riffAt(pos)
	case bytes.HasPrefix(b, []byte("LYRICSBEGIN")):
		return s.lyricsAt(pos)
	case len(b) >= 4 && b[0] == 0xFF && b[1]&0xE0 == 0xE0:
		return s.audioAt(pos)
	}
	return nil, 0
}

// id3v2At recognizes an ID3v2 tag: 10-byte header with a syncsafe size,
// plus an optional 10-byte footer signalled by flag bit 4.
func (s *Scanner) id3v2At(pos int) (*Frame, int) {
	b := s.data[pos:]
	if len(b) < 10 {
		return nil, 0
	}
	size := syncsafe(b[6:10])
	total := 10 + size
	if b[5]&0x10 != 0 {
		total += 10
	}
	if size > maxDeclaredSize || total > len(b) {
		return nil, 0
	}
	return &Frame{Kind: KindID3, Offset: int64(pos), Raw: b[:total]}, total
}

// id3v1At recognizes the 128-byte ID3v1 trailer, and the 227-byte
// extended "TAG+" block that precedes it in enhanced tags.
func (s *Scanner) id3v1At(pos int) (*Frame, int) {
	b := s.data[pos:]
	total := 128
	if len(b) >= 4 && b[3] == '+' {
		total = 227
	}
	if total > len(b) {
		return nil, 0
	}
	return &Frame{Kind: KindID3, Offset: int64(pos), Raw: b[:total]}, total
}

// apeAt recognizes an APE tag block from its 32-byte header or footer.
// The declared size (LE at offset 12) covers the items and footer but
// not the header; flag bit 29 marks the block we are looking at as the
// header. A bare footer claims only its own 32 bytes; the items before
// it were necessarily classified already.
func (s *Scanner) apeAt(pos int) (*Frame, int) {
	b := s.data[pos:]
	if len(b) < 32 {
		return nil, 0
	}
	size := int(binary.LittleEndian.Uint32(b[12:16]))
	flags := binary.LittleEndian.Uint32(b[20:24])
	total := 32
	if flags&(1<<29) != 0 {
		total += size
	}
	if size > maxDeclaredSize || total > len(b) {
		return nil, 0
	}
	return &Frame{Kind: KindAPE, Offset: int64(pos), Raw: b[:total]}, total
}

// riffAt recognizes the RIFF/WAVE wrapper some rippers put around MPEG
// audio. The frame covers the 12-byte prefix, every chunk before "data",
// and the data chunk header itself; the data payload that follows is
// left for the audio recognizer.
func (s *Scanner) riffAt(pos int) (*Frame, int) {
	b := s.data[pos:]
	off := 12
	for off+8 <= len(b) {
		id := b[off : off+4]
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		off += 8
		if bytes.Equal(id, dataMagic) {
			return &Frame{Kind: KindRiff, Offset: int64(pos), Raw: b[:off]}, off
		}
		if size > maxDeclaredSize {
			return nil, 0
		}
		if size%2 == 1 {
			size++ // chunks are word-aligned
		}
		if off+size > len(b) {
			return nil, 0
		}
		off += size
	}
	return nil, 0
}

// lyricsAt recognizes a Lyrics3v2 block, which runs from "LYRICSBEGIN"
// through the "LYRICS200" trailer (the 6-digit size field sits just
// before the trailer and is swept up with it).
func (s *Scanner) lyricsAt(pos int) (*Frame, int) {
	b := s.data[pos:]
	idx := bytes.Index(b, []byte("LYRICS200"))
	if idx < 0 {
		return nil, 0
	}
	total := idx + len("LYRICS200")
	return &Frame{Kind: KindMeta, Offset: int64(pos), Raw: b[:total]}, total
}

func (s *Scanner) audioAt(pos int) (*Frame, int) {
	b := s.data[pos:]
	h, err := ParseAudioHeader(b[:4])
	if err != nil {
		return nil, 0
	}
	if h.FrameLen > len(b) {
		return nil, 0 // truncated trailing frame
	}
	return &Frame{Kind: KindAudio, Offset: int64(pos), Raw: b[:h.FrameLen], Header: h}, h.FrameLen
}

// syncsafe decodes a 4-byte ID3v2 syncsafe integer (7 bits per byte).
func syncsafe(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}
