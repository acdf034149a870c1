package h264meta

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// mdpmTagDef describes one known MDPM tag: report name, conversion key
// into the registry below, how many following entries it absorbs, an
// optional unit suffix, and optional enum value names.
type mdpmTagDef struct {
	name    string
	format  string
	combine int
	unit    string
	values  map[uint32]string
}

var mdpmTags = map[byte]mdpmTagDef{
	0x18: {name: "Recorded date", format: "bcdDateTime", combine: 1},

	0x70: {name: "Camera preset 1", format: "hex"},
	0x71: {name: "Camera preset 2", format: "hex"},
	0x7F: {name: "Shutter", format: "shutter"},

	0xA0: {name: "Exposure time", format: "exposure"},
	0xA1: {name: "F number", format: "fnumber"},
	0xA2: {name: "Exposure program", format: "int", values: map[uint32]string{
		0: "Not defined", 1: "Manual", 2: "Program AE", 3: "Aperture-priority AE",
		4: "Shutter speed priority AE", 5: "Creative", 6: "Action",
		7: "Portrait", 8: "Landscape",
	}},
	0xA3: {name: "Brightness", format: "srational"},
	0xA4: {name: "Exposure compensation", format: "srational"},
	0xA5: {name: "Max aperture", format: "rational"},
	0xA6: {name: "Flash", format: "int", values: map[uint32]string{
		0x00: "No flash", 0x01: "Fired", 0x05: "Fired, return not detected",
		0x07: "Fired, return detected", 0x10: "Off, did not fire",
		0x18: "Auto, did not fire", 0x19: "Auto, fired", 0x20: "No flash function",
	}},
	0xA7: {name: "Custom rendered", format: "int", values: map[uint32]string{
		0: "Normal", 1: "Custom",
	}},
	0xA8: {name: "White balance", format: "int", values: map[uint32]string{
		0: "Auto", 1: "Manual",
	}},
	0xA9: {name: "Focal length", format: "rational", unit: " mm"},
	0xAA: {name: "Scene capture type", format: "int", values: map[uint32]string{
		0: "Standard", 1: "Landscape", 2: "Portrait", 3: "Night",
	}},

	0xB0: {name: "GPS version", format: "gpsVersion"},
	0xB1: {name: "GPS latitude ref", format: "ascii", values: map[uint32]string{
		'N': "North", 'S': "South",
	}},
	0xB2: {name: "GPS latitude", format: "coord", combine: 2},
	0xB5: {name: "GPS longitude ref", format: "ascii", values: map[uint32]string{
		'E': "East", 'W': "West",
	}},
	0xB6: {name: "GPS longitude", format: "coord", combine: 2},
	0xB9: {name: "GPS altitude ref", format: "int", values: map[uint32]string{
		0: "Above sea level", 1: "Below sea level",
	}},
	0xBA: {name: "GPS altitude", format: "rational", unit: " m"},
	0xBB: {name: "GPS time", format: "clock", combine: 2},
	0xBE: {name: "GPS status", format: "ascii", values: map[uint32]string{
		'A': "Measurement active", 'V': "Measurement void",
	}},
	0xBF: {name: "GPS measure mode", format: "ascii", values: map[uint32]string{
		'2': "2-dimensional", '3': "3-dimensional",
	}},
	0xC0: {name: "GPS DOP", format: "rational"},
	0xC1: {name: "GPS speed ref", format: "ascii", values: map[uint32]string{
		'K': "km/h", 'M': "mph", 'N': "knots",
	}},
	0xC2: {name: "GPS speed", format: "rational"},
	0xC3: {name: "GPS track ref", format: "ascii", values: map[uint32]string{
		'T': "True North", 'M': "Magnetic North",
	}},
	0xC4: {name: "GPS track", format: "rational", unit: "°"},
	0xC5: {name: "GPS image direction ref", format: "ascii", values: map[uint32]string{
		'T': "True North", 'M': "Magnetic North",
	}},
	0xC6: {name: "GPS image direction", format: "rational", unit: "°"},
	0xC7: {name: "GPS map datum", format: "ascii", combine: 1},

	0xE0: {name: "Make", format: "makeModel", combine: 1},
}

func mdpmCombineCount(tag byte) int {
	return mdpmTags[tag].combine
}

// mdpmConversions is the registry of named pure conversion functions the
// tag table refers to by key.
var mdpmConversions = map[string]func(def mdpmTagDef, value []byte) string{
	"bcdDateTime": convertBCDDateTime,
	"rational":    convertRational,
	"srational":   convertSignedRational,
	"exposure":    convertExposureTime,
	"fnumber":     convertFNumber,
	"shutter":     convertShutter,
	"int":         convertInt,
	"ascii":       convertASCII,
	"hex":         convertHex,
	"coord":       convertCoordinate,
	"clock":       convertClock,
	"gpsVersion":  convertGPSVersion,
	"makeModel":   convertMakeModel,
}

// decodeMDPMEntry turns a raw directory entry into a report field. Tags
// missing from the catalogue are surfaced generically so nothing is
// silently dropped. ok is false when the value could not be rendered.
func decodeMDPMEntry(e mdpmEntry) (Field, bool) {
	def, known := mdpmTags[e.tag]
	if !known {
		def = mdpmTagDef{name: fmt.Sprintf("Unknown tag 0x%02X", e.tag), format: "hex"}
	}
	conv := mdpmConversions[def.format]
	if conv == nil {
		conv = convertHex
	}
	value := conv(def, e.value)
	if value == "" {
		return Field{}, false
	}
	return Field{Name: def.name, Value: value + def.unit}, true
}

func bcdDigits(b byte) (int, bool) {
	hi := int(b >> 4)
	lo := int(b & 0x0F)
	if hi > 9 || lo > 9 {
		return 0, false
	}
	return hi*10 + lo, true
}

// convertBCDDateTime decodes the combined 0x18+0x19 value: a timezone
// byte followed by seven BCD bytes (century, year, month, day, hour,
// minute, second). A timezone byte of 0xFF means "not recorded".
func convertBCDDateTime(_ mdpmTagDef, value []byte) string {
	if len(value) < 8 {
		return ""
	}
	parts := make([]int, 7)
	for i := 0; i < 7; i++ {
		d, ok := bcdDigits(value[i+1])
		if !ok {
			return ""
		}
		parts[i] = d
	}
	year := parts[0]*100 + parts[1]
	out := fmt.Sprintf("%04d:%02d:%02d %02d:%02d:%02d",
		year, parts[2], parts[3], parts[4], parts[5], parts[6])
	if tz := value[0]; tz != 0xFF {
		halfHours := int(tz & 0x3F)
		sign := "+"
		if tz&0x40 != 0 {
			sign = "-"
		}
		out += fmt.Sprintf("%s%02d:%02d", sign, halfHours/2, (halfHours%2)*30)
	}
	return out
}

func rational16(value []byte) (uint32, uint32) {
	num := uint32(binary.BigEndian.Uint16(value[0:2]))
	den := uint32(binary.BigEndian.Uint16(value[2:4]))
	return num, den
}

func convertRational(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	num, den := rational16(value)
	if den == 0 {
		return ""
	}
	return trimFloat(float64(num) / float64(den))
}

func convertSignedRational(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	num := int16(binary.BigEndian.Uint16(value[0:2]))
	den := int16(binary.BigEndian.Uint16(value[2:4]))
	if den == 0 {
		return ""
	}
	return trimFloat(float64(num) / float64(den))
}

func convertExposureTime(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	num, den := rational16(value)
	if den == 0 || num == 0 {
		return ""
	}
	if num < den {
		return fmt.Sprintf("1/%s s", trimFloat(float64(den)/float64(num)))
	}
	return trimFloat(float64(num)/float64(den)) + " s"
}

func convertFNumber(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	num, den := rational16(value)
	if den == 0 {
		return ""
	}
	return "f/" + trimFloat(float64(num)/float64(den))
}

// convertShutter treats the low 16 bits as the reciprocal shutter speed.
func convertShutter(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	denom := binary.BigEndian.Uint32(value) & 0xFFFF
	if denom == 0 {
		return ""
	}
	return fmt.Sprintf("1/%d s", denom)
}

func convertInt(def mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	v := binary.BigEndian.Uint32(value)
	if name, ok := def.values[v]; ok {
		return name
	}
	return fmt.Sprintf("%d", v)
}

func convertASCII(def mdpmTagDef, value []byte) string {
	s := strings.TrimRight(string(value), "\x00 ")
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return ""
		}
	}
	if s == "" {
		return ""
	}
	if len(s) == 1 {
		if name, ok := def.values[uint32(s[0])]; ok {
			return name
		}
	}
	return s
}

func convertHex(_ mdpmTagDef, value []byte) string {
	return "0x" + hex.EncodeToString(value)
}

// convertCoordinate decodes three 16.16 rationals (degrees, minutes,
// seconds) from a combined 12-byte value.
func convertCoordinate(_ mdpmTagDef, value []byte) string {
	if len(value) < 12 {
		return ""
	}
	degNum, degDen := rational16(value[0:4])
	minNum, minDen := rational16(value[4:8])
	secNum, secDen := rational16(value[8:12])
	if degDen == 0 || minDen == 0 || secDen == 0 {
		return ""
	}
	return fmt.Sprintf("%s° %s' %s\"",
		trimFloat(float64(degNum)/float64(degDen)),
		trimFloat(float64(minNum)/float64(minDen)),
		trimFloat(float64(secNum)/float64(secDen)))
}

func convertClock(_ mdpmTagDef, value []byte) string {
	if len(value) < 12 {
		return ""
	}
	var parts [3]uint32
	for i := range parts {
		num, den := rational16(value[i*4 : i*4+4])
		if den == 0 {
			return ""
		}
		parts[i] = num / den
	}
	return fmt.Sprintf("%02d:%02d:%02d", parts[0], parts[1], parts[2])
}

func convertGPSVersion(_ mdpmTagDef, value []byte) string {
	if len(value) < 4 {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.%d", value[0], value[1], value[2], value[3])
}

// convertMakeModel maps the maker code in the first two bytes; unknown
// codes render as raw hex.
func convertMakeModel(_ mdpmTagDef, value []byte) string {
	if len(value) < 2 {
		return ""
	}
	code := binary.BigEndian.Uint16(value[0:2])
	switch code {
	case 0x0103:
		return "Panasonic"
	case 0x0108:
		return "Sony"
	case 0x1011:
		return "Canon"
	case 0x1104:
		return "JVC"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
