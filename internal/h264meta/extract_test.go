package h264meta

import (
	"strings"
	"testing"
)

func annexBStream(nals ...[]byte) []byte {
	var stream []byte
	for _, nal := range nals {
		stream = append(stream, 0x00, 0x00, 0x00, 0x01)
		stream = append(stream, nal...)
	}
	return stream
}

func spsNAL(widthInMbsMinus1, heightInMapUnitsMinus1 uint32) []byte {
	return wrapNAL(0x67, buildSPS(widthInMbsMinus1, heightInMapUnitsMinus1))
}

func seiNAL(messages []seiMessage) []byte {
	return wrapNAL(0x06, buildSEI(messages))
}

func mdpmSEINAL(entries [][5]byte) []byte {
	return seiNAL([]seiMessage{
		{payloadType: seiTypeUserData, payload: buildMDPMPayload(entries)},
	})
}

func TestExtractDimensionsAndMetadata(t *testing.T) {
	stream := annexBStream(
		spsNAL(79, 44),
		mdpmSEINAL([][5]byte{
			{0x18, 0xFF, 0x20, 0x08, 0x12},
			{0x19, 0x31, 0x23, 0x59, 0x58},
			{0xA8, 0x00, 0x00, 0x00, 0x01},
		}),
	)

	res := Extract(stream, Options{})
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings=%v", res.Warnings)
	}
	if len(res.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(res.Documents))
	}
	doc := res.Documents[0]
	if !doc.HasSize || doc.Width != 1280 || doc.Height != 720 {
		t.Fatalf("size=%dx%d hasSize=%v", doc.Width, doc.Height, doc.HasSize)
	}
	if got := findField(doc.Fields, "Recorded date"); got != "2008:12:31 23:59:58" {
		t.Fatalf("Recorded date=%q", got)
	}
	if got := findField(doc.Fields, "White balance"); got != "Manual" {
		t.Fatalf("White balance=%q", got)
	}
}

func TestExtractRejectedDimensionsEmitNothing(t *testing.T) {
	stream := annexBStream(spsNAL(5, 44)) // 96 pixels wide
	res := Extract(stream, Options{})
	if len(res.Documents) != 0 {
		t.Fatalf("documents=%+v, want none", res.Documents)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("rejected dimensions must stay silent: %v", res.Warnings)
	}
}

func TestExtractForbiddenBitAbortsStream(t *testing.T) {
	bad := wrapNAL(0xE7, buildSPS(79, 44))
	stream := annexBStream(bad, mdpmSEINAL([][5]byte{{0xA8, 0x00, 0x00, 0x00, 0x00}}))

	res := Extract(stream, Options{})
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "forbidden_zero_bit") {
		t.Fatalf("warnings=%v", res.Warnings)
	}
	if len(res.Documents) != 0 {
		t.Fatalf("no NAL unit after the violation may be processed: %+v", res.Documents)
	}
}

func TestExtractOutOfSequenceWarning(t *testing.T) {
	stream := annexBStream(mdpmSEINAL([][5]byte{
		{0xA0, 0x00, 0x01, 0x00, 0x1E},
		{0xA2, 0x00, 0x00, 0x00, 0x02},
		{0xA1, 0x00, 0x1C, 0x00, 0x0A},
	}))

	res := Extract(stream, Options{})
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "out-of-sequence") {
		t.Fatalf("warnings=%v", res.Warnings)
	}
	if len(res.Documents) != 1 {
		t.Fatalf("entries before the violation must survive: %+v", res.Documents)
	}
	doc := res.Documents[0]
	if findField(doc.Fields, "Exposure time") == "" || findField(doc.Fields, "Exposure program") == "" {
		t.Fatalf("fields=%+v", doc.Fields)
	}
	if findField(doc.Fields, "F number") != "" {
		t.Fatalf("entry after the violation leaked through: %+v", doc.Fields)
	}
}

func TestExtractFirstOccurrenceOnlyByDefault(t *testing.T) {
	stream := annexBStream(
		spsNAL(79, 44),
		spsNAL(119, 67),
	)
	res := Extract(stream, Options{})
	if len(res.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(res.Documents))
	}
	if res.Documents[0].Width != 1280 {
		t.Fatalf("second SPS replaced the first: %+v", res.Documents[0])
	}
}

func TestExtractAllOccurrences(t *testing.T) {
	stream := annexBStream(
		spsNAL(79, 44),
		mdpmSEINAL([][5]byte{{0xA8, 0x00, 0x00, 0x00, 0x00}}),
		spsNAL(119, 67),
		mdpmSEINAL([][5]byte{{0xA8, 0x00, 0x00, 0x00, 0x01}}),
	)
	res := Extract(stream, Options{ExtractAll: true})
	if len(res.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(res.Documents))
	}
	if res.Documents[0].Width != 1280 || res.Documents[1].Width != 1920 {
		t.Fatalf("widths %d,%d want 1280,1920", res.Documents[0].Width, res.Documents[1].Width)
	}
	if findField(res.Documents[0].Fields, "White balance") != "Auto" ||
		findField(res.Documents[1].Fields, "White balance") != "Manual" {
		t.Fatalf("per-document fields mixed up: %+v", res.Documents)
	}
}

type countingSink struct {
	units int
}

func (c *countingSink) NALUnit(byte, int) { c.units++ }

func TestExtractDiagnosticsSeeAllUnits(t *testing.T) {
	stream := annexBStream(
		spsNAL(79, 44),
		[]byte{0x41, 0x9A, 0x22}, // slice, never decoded
		[]byte{0x68, 0xCE},       // PPS, never decoded
	)
	sink := &countingSink{}
	Extract(stream, Options{Diagnostics: sink})
	if sink.units != 3 {
		t.Fatalf("diagnostics saw %d units, want 3", sink.units)
	}
}

func TestExtractPictureTiming(t *testing.T) {
	// SPS with VUI: pic_struct present, no HRD.
	w := &bitWriter{}
	w.putBits(8, 66)
	w.putBits(16, 0)
	w.putUE(0)
	w.putUE(0)
	w.putUE(0)
	w.putUE(0)
	w.putUE(0)
	w.putBits(1, 0)
	w.putUE(79)
	w.putUE(44)
	w.putBits(1, 1)
	w.putBits(1, 0)
	w.putBits(1, 0) // frame_cropping_flag
	w.putBits(1, 1) // vui_parameters_present_flag
	w.putBits(1, 0)
	w.putBits(1, 0)
	w.putBits(1, 0)
	w.putBits(1, 0)
	w.putBits(1, 0) // timing_info_present_flag
	w.putBits(1, 0) // nal_hrd_parameters_present_flag
	w.putBits(1, 0) // vcl_hrd_parameters_present_flag
	w.putBits(1, 1) // pic_struct_present_flag
	sps := wrapNAL(0x67, w.bytes())

	pt := &bitWriter{}
	pt.putBits(4, 0)  // pic_struct
	pt.putBits(1, 1)  // clock_timestamp_flag
	pt.putBits(2, 1)  // ct_type
	pt.putBits(1, 0)  // nuit_field_based_flag
	pt.putBits(5, 0)  // counting_type
	pt.putBits(1, 1)  // full_timestamp_flag
	pt.putBits(1, 0)  // discontinuity_flag
	pt.putBits(1, 0)  // cnt_dropped_flag
	pt.putBits(8, 10) // n_frames
	pt.putBits(6, 1)  // seconds
	pt.putBits(6, 2)  // minutes
	pt.putBits(5, 3)  // hours
	sei := seiNAL([]seiMessage{{payloadType: seiTypePictureTiming, payload: pt.bytes()}})

	stream := annexBStream(sps, sei)

	res := Extract(stream, Options{ParsePictureTiming: true})
	if len(res.Documents) != 1 {
		t.Fatalf("documents=%+v", res.Documents)
	}
	if got := findField(res.Documents[0].Fields, "Time code"); got != "03:02:01:10" {
		t.Fatalf("Time code=%q, want 03:02:01:10", got)
	}

	// Off by default.
	res = Extract(stream, Options{})
	if findField(res.Documents[0].Fields, "Time code") != "" {
		t.Fatalf("picture timing decoded without the flag")
	}
}
