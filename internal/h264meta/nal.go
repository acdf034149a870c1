package h264meta

const (
	nalTypeSEI = 6
	nalTypeSPS = 7
)

type nalUnit struct {
	kind      byte
	forbidden bool
	rbsp      []byte
}

// scanNALUnits walks an Annex-B byte stream and invokes fn for every start
// code delimited NAL unit, with emulation-prevention bytes already removed
// from the payload. fn returns false to stop the scan.
func scanNALUnits(data []byte, fn func(nalUnit) bool) {
	sc, scLen := findAnnexBStartCode(data, 0)
	if sc == -1 {
		return
	}
	start := sc + scLen
	for start < len(data) {
		next, nextLen := findAnnexBStartCode(data, start)
		end := next
		if end == -1 {
			end = len(data)
		}
		if start < end {
			raw := data[start:end]
			unit := nalUnit{
				kind:      raw[0] & 0x1F,
				forbidden: raw[0]&0x80 != 0,
				rbsp:      removeEmulationPrevention(raw[1:]),
			}
			if !fn(unit) {
				return
			}
		}
		if next == -1 {
			return
		}
		start = next + nextLen
	}
}

// findAnnexBStartCode locates the next 00 00 01 or 00 00 00 01 sequence
// and returns its offset and length, or -1 when none remains.
func findAnnexBStartCode(data []byte, start int) (int, int) {
	for i := start; i+2 < len(data); i++ {
		if data[i] == 0x00 && data[i+1] == 0x00 {
			if data[i+2] == 0x01 {
				return i, 3
			}
			if i+3 < len(data) && data[i+2] == 0x00 && data[i+3] == 0x01 {
				return i, 4
			}
		}
	}
	return -1, 0
}

// removeEmulationPrevention rewrites every 00 00 03 sequence to 00 00,
// producing the RBSP. The zero-run counter resets after each removal so
// retained zeros never pair across a removed byte.
func removeEmulationPrevention(payload []byte) []byte {
	rbsp := make([]byte, 0, len(payload))
	zeroRun := 0
	for _, b := range payload {
		if zeroRun >= 2 && b == 0x03 {
			zeroRun = 0
			continue
		}
		rbsp = append(rbsp, b)
		if b == 0x00 {
			zeroRun++
		} else {
			zeroRun = 0
		}
	}
	return rbsp
}
