package frame

import "fmt"

// Version enumerates MPEG audio versions.
type Version int

const (
	MPEG1 Version = iota
	MPEG2
	MPEG25
)

// Layer enumerates MPEG audio layers.
type Layer int

const (
	LayerI Layer = iota
	LayerII
	LayerIII
)

// Bitrate tables in kbps, indexed by the 4-bit bitrate field.
// Index 0 ("free" bitrate) and index 15 are unusable: without a declared
// bitrate the frame length cannot be computed, so both parse as errors.
var (
	bitrateV1L1  = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0}
	bitrateV1L2  = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0}
	bitrateV1L3  = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateV2L1  = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0}
	bitrateV2L23 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rate tables in Hz, indexed by the 2-bit sample rate field.
var sampleRates = map[Version][4]int{
	MPEG1:  {44100, 48000, 32000, 0},
	MPEG2:  {22050, 24000, 16000, 0},
	MPEG25: {11025, 12000, 8000, 0},
}

func bitrateFor(v Version, l Layer, idx int) int {
	if v == MPEG1 {
		switch l {
		case LayerI:
			return bitrateV1L1[idx]
		case LayerII:
			return bitrateV1L2[idx]
		default:
			return bitrateV1L3[idx]
		}
	}
	if l == LayerI {
		return bitrateV2L1[idx]
	}
	return bitrateV2L23[idx]
}

// ParseAudioHeader decodes the 4 leading bytes of an MPEG audio frame.
// It returns an error for anything that is not a computable frame:
// missing sync, reserved version/layer, free or invalid bitrate,
// invalid sample rate.
func ParseAudioHeader(b []byte) (*AudioHeader, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("header too short (%d bytes)", len(b))
	}
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return nil, fmt.Errorf("no frame sync")
	}

	var version Version
	switch (b[1] >> 3) & 0x3 {
	case 0:
		version = MPEG25
	case 2:
		version = MPEG2
	case 3:
		version = MPEG1
	default:
		return nil, fmt.Errorf("reserved MPEG version")
	}

	var layer Layer
	switch (b[1] >> 1) & 0x3 {
	case 1:
		layer = LayerIII
	case 2:
		layer = LayerII
	case 3:
		layer = LayerI
	default:
		return nil, fmt.Errorf("reserved layer")
	}

	bitrateIdx := int(b[2] >> 4)
	bitrate := bitrateFor(version, layer, bitrateIdx) * 1000
	if bitrate == 0 {
		return nil, fmt.Errorf("free or invalid bitrate index %d", bitrateIdx)
	}

	sampleRate := sampleRates[version][(b[2]>>2)&0x3]
	if sampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate index")
	}

	h := &AudioHeader{
		Version:     version,
		Layer:       layer,
		Protected:   b[1]&0x1 == 0,
		Bitrate:     bitrate,
		SampleRate:  sampleRate,
		Padding:     b[2]>>1&0x1 == 1,
		Private:     b[2]&0x1 == 1,
		ChannelMode: int(b[3] >> 6),
		Copyright:   b[3]>>3&0x1 == 1,
		Original:    b[3]>>2&0x1 == 1,
		Emphasis:    int(b[3] & 0x3),
	}
	h.FrameLen = frameLength(h)
	if h.FrameLen < 4 {
		return nil, fmt.Errorf("implausible frame length %d", h.FrameLen)
	}
	return h, nil
}

// frameLength computes the total frame size in bytes. Layer I counts in
// 4-byte slots; Layer III halves the samples-per-frame for MPEG2/2.5.
func frameLength(h *AudioHeader) int {
	pad := 0
	if h.Padding {
		pad = 1
	}
	switch h.Layer {
	case LayerI:
		return (12*h.Bitrate/h.SampleRate + pad) * 4
	case LayerII:
		return 144*h.Bitrate/h.SampleRate + pad
	default: // Layer III
		if h.Version == MPEG1 {
			return 144*h.Bitrate/h.SampleRate + pad
		}
		return 72*h.Bitrate/h.SampleRate + pad
	}
}
