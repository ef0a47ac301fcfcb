// Package frame classifies an MP3 byte stream into typed frames: MPEG
// audio frames, metadata containers (RIFF wrapper, ID3v1/ID3v2, APE,
// Lyrics3), and invalid spans the scanner could not interpret.
//
// Frames are produced in stream order; concatenating the raw views of
// every emitted frame (with a permissive scanner configuration)
// reconstructs the input byte-for-byte.
package frame

// Kind discriminates the frame union.
type Kind int

const (
	KindAudio   Kind = iota // MPEG audio frame
	KindRiff                // RIFF wrapper prefix (up to the data payload)
	KindID3                 // ID3v2 tag or ID3v1 trailer
	KindAPE                 // APE tag block
	KindMeta                // generic metadata block (Lyrics3v2)
	KindInvalid             // bytes no recognizer claimed
)

// String returns the lowercase category name.
func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindRiff:
		return "riff"
	case KindID3:
		return "id3"
	case KindAPE:
		return "ape"
	case KindMeta:
		return "meta"
	default:
		return "invalid"
	}
}

// Frame is one contiguous, independently-delimited unit of the input
// stream. Raw holds the frame's current byte view. For audio frames,
// Header exposes the mutable bits; CommitHeader must be called after
// changing them so Raw reflects the new state.
type Frame struct {
	Kind   Kind
	Offset int64 // byte offset of the frame in the input stream
	Raw    []byte
	Header *AudioHeader // non-nil only for KindAudio
}

// AudioHeader is the decoded 4-byte MPEG audio frame header. Only
// Private and Original are meant to be changed after parsing; every
// other field is fixed by the byte view.
type AudioHeader struct {
	Version     Version
	Layer       Layer
	Protected   bool // CRC follows the header
	Bitrate     int  // bits per second
	SampleRate  int  // Hz
	Padding     bool
	Private     bool
	ChannelMode int
	Copyright   bool
	Original    bool
	Emphasis    int
	FrameLen    int // total frame length in bytes, header included
}

// CommitHeader re-encodes the mutable header bits into the frame's raw
// byte view. The private bit lives in byte 2 bit 0, the original bit in
// byte 3 bit 2; nothing else is touched, so frame length and every other
// header field are preserved.
func (f *Frame) CommitHeader() {
	if f.Kind != KindAudio || f.Header == nil || len(f.Raw) < 4 {
		return
	}
	f.Raw[2] &^= 0x01
	if f.Header.Private {
		f.Raw[2] |= 0x01
	}
	f.Raw[3] &^= 0x04
	if f.Header.Original {
		f.Raw[3] |= 0x04
	}
}
