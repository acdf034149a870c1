package h264meta

import (
	"bytes"
	"fmt"
)

// MDPM user data is identified by this fixed UUID immediately followed by
// the ASCII marker "MDPM". Other unregistered payloads (GA94 captions and
// friends) share SEI type 5 and are skipped.
var mdpmUUID = []byte{
	0x17, 0xee, 0x8c, 0x60, 0xf8, 0x4d, 0x11, 0xd9,
	0x8c, 0xd6, 0x08, 0x00, 0x20, 0x0c, 0x9a, 0x66,
}

const mdpmMarker = "MDPM"

const (
	seiTypePictureTiming = 1
	seiTypeUserData      = 5
)

type seiHandler struct {
	timing   func(payload []byte)
	userData func(payload []byte)
}

// iterateSEI walks the (type, size, payload) messages of one SEI RBSP.
// Type and size use byte-granular 255-extension codes. A lone 0x80 type
// byte at the end of the buffer is the alignment terminator. Finding and
// consuming the MDPM user data payload stops the iteration.
func iterateSEI(rbsp []byte, h seiHandler) {
	pos := 0
	for pos < len(rbsp) {
		payloadType, ok := readSEICode(rbsp, &pos)
		if !ok {
			return
		}
		if payloadType == 0x80 && pos >= len(rbsp) {
			return
		}
		size, ok := readSEICode(rbsp, &pos)
		if !ok || pos+size > len(rbsp) {
			return
		}
		payload := rbsp[pos : pos+size]
		pos += size
		switch payloadType {
		case seiTypePictureTiming:
			if h.timing != nil {
				h.timing(payload)
			}
		case seiTypeUserData:
			if isMDPMPayload(payload) {
				if h.userData != nil {
					h.userData(payload[len(mdpmUUID)+len(mdpmMarker):])
				}
				return
			}
		}
	}
}

// readSEICode sums bytes while they equal 255; the first smaller byte
// ends the code.
func readSEICode(data []byte, pos *int) (int, bool) {
	value := 0
	for {
		if *pos >= len(data) {
			return 0, false
		}
		b := data[*pos]
		*pos++
		value += int(b)
		if b != 0xFF {
			return value, true
		}
	}
}

func isMDPMPayload(payload []byte) bool {
	n := len(mdpmUUID)
	return len(payload) >= n+len(mdpmMarker) &&
		bytes.Equal(payload[:n], mdpmUUID) &&
		string(payload[n:n+len(mdpmMarker)]) == mdpmMarker
}

// numClockTS maps a pic_struct code to its clock timestamp count.
var numClockTS = map[uint32]int{
	0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 2, 8: 3,
}

// parsePictureTiming decodes an SEI picture timing payload using VUI state
// from the active document's SPS. Best effort: unmapped pic_struct codes
// and missing bits abort silently. Returns the first present clock
// timestamp rendered as a timecode, or "".
func parsePictureTiming(payload []byte, vui *vuiTimingState) string {
	bc := newBitCursor(payload)
	if vui.hrdPresent {
		bc.skipBits(vui.cpbRemovalDelayLength + 1)
		bc.skipBits(vui.dpbOutputDelayLength + 1)
	}
	if !vui.picStructPresent {
		return ""
	}
	picStruct := bc.readBits(4)
	count, ok := numClockTS[picStruct]
	if !ok || bc.exhausted {
		return ""
	}
	for i := 0; i < count; i++ {
		if bc.readBits(1) != 1 {
			continue
		}
		tc := readClockTimestamp(bc, vui)
		if bc.exhausted {
			return ""
		}
		return tc
	}
	return ""
}

// readClockTimestamp decodes one clock_timestamp structure and formats it
// as HH:MM:SS:FF. Absent components render as zero.
func readClockTimestamp(bc *bitCursor, vui *vuiTimingState) string {
	bc.skipBits(2) // ct_type
	bc.skipBits(1) // nuit_field_based_flag
	bc.skipBits(5) // counting_type
	full := bc.readBits(1) == 1
	bc.skipBits(1) // discontinuity_flag
	bc.skipBits(1) // cnt_dropped_flag
	frames := bc.readBits(8)
	var seconds, minutes, hours uint32
	if full {
		seconds = bc.readBits(6)
		minutes = bc.readBits(6)
		hours = bc.readBits(5)
	} else {
		if bc.readBits(1) == 1 {
			seconds = bc.readBits(6)
			if bc.readBits(1) == 1 {
				minutes = bc.readBits(6)
				if bc.readBits(1) == 1 {
					hours = bc.readBits(5)
				}
			}
		}
	}
	if vui.timeOffsetLength > 0 {
		bc.skipBits(vui.timeOffsetLength)
	}
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
