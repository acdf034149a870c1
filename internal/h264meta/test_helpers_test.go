package h264meta

import "math/bits"

// bitWriter builds test bitstreams MSB-first.
type bitWriter struct {
	data   []byte
	bitPos int
}

func (w *bitWriter) putBit(v uint32) {
	if w.bitPos%8 == 0 {
		w.data = append(w.data, 0)
	}
	if v != 0 {
		w.data[w.bitPos/8] |= 1 << uint(7-w.bitPos%8)
	}
	w.bitPos++
}

func (w *bitWriter) putBits(n int, v uint32) {
	for i := n - 1; i >= 0; i-- {
		w.putBit(v >> uint(i) & 1)
	}
}

// putUE writes v as an unsigned Exp-Golomb code.
func (w *bitWriter) putUE(v uint32) {
	n := bits.Len32(v + 1)
	w.putBits(n-1, 0)
	w.putBits(n, v+1)
}

// putSE writes v as a signed Exp-Golomb code.
func (w *bitWriter) putSE(v int32) {
	if v <= 0 {
		w.putUE(uint32(-2 * v))
		return
	}
	w.putUE(uint32(2*v - 1))
}

func (w *bitWriter) bytes() []byte {
	return w.data
}

// buildSPS encodes a minimal baseline-profile SPS with the given
// macroblock dimensions, without cropping or VUI.
func buildSPS(widthInMbsMinus1, heightInMapUnitsMinus1 uint32) []byte {
	w := &bitWriter{}
	w.putBits(8, 66) // profile_idc
	w.putBits(16, 0) // constraint flags + level_idc
	w.putUE(0)       // seq_parameter_set_id
	w.putUE(0)       // log2_max_frame_num_minus4
	w.putUE(0)       // pic_order_cnt_type
	w.putUE(0)       // log2_max_pic_order_cnt_lsb_minus4
	w.putUE(0)       // max_num_ref_frames
	w.putBits(1, 0)  // gaps_in_frame_num_value_allowed_flag
	w.putUE(widthInMbsMinus1)
	w.putUE(heightInMapUnitsMinus1)
	w.putBits(1, 1) // frame_mbs_only_flag
	w.putBits(1, 0) // direct_8x8_inference_flag
	w.putBits(1, 0) // frame_cropping_flag
	w.putBits(1, 0) // vui_parameters_present_flag
	return w.bytes()
}

// buildMDPMPayload assembles an SEI type-5 payload: UUID, marker, entry
// count, then 1-byte tag + 4-byte value entries.
func buildMDPMPayload(entries [][5]byte) []byte {
	payload := append([]byte(nil), mdpmUUID...)
	payload = append(payload, mdpmMarker...)
	payload = append(payload, byte(len(entries)))
	for _, e := range entries {
		payload = append(payload, e[:]...)
	}
	return payload
}

// buildSEI wraps payloads into one SEI RBSP with (type, size) headers and
// the alignment terminator.
func buildSEI(messages []struct {
	payloadType int
	payload     []byte
}) []byte {
	var rbsp []byte
	for _, m := range messages {
		rbsp = appendSEICode(rbsp, m.payloadType)
		rbsp = appendSEICode(rbsp, len(m.payload))
		rbsp = append(rbsp, m.payload...)
	}
	return append(rbsp, 0x80)
}

// insertEmulationPrevention stuffs 0x03 after every zero pair followed by
// a byte of 0x03 or less, the inverse of removeEmulationPrevention.
func insertEmulationPrevention(rbsp []byte) []byte {
	out := make([]byte, 0, len(rbsp))
	zeroRun := 0
	for _, b := range rbsp {
		if zeroRun >= 2 && b <= 0x03 {
			out = append(out, 0x03)
			zeroRun = 0
		}
		out = append(out, b)
		if b == 0x00 {
			zeroRun++
		} else {
			zeroRun = 0
		}
	}
	return out
}

// wrapNAL prepends the NAL header byte and applies emulation prevention.
func wrapNAL(header byte, rbsp []byte) []byte {
	return append([]byte{header}, insertEmulationPrevention(rbsp)...)
}

func appendSEICode(dst []byte, value int) []byte {
	for value >= 255 {
		dst = append(dst, 0xFF)
		value -= 255
	}
	return append(dst, byte(value))
}
