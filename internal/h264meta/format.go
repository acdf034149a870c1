package h264meta

import "fmt"

const maxSniffBytes = 4096

// DetectFormat reports whether the header looks like an Annex-B H.264
// elementary stream: a start code within the sniff window whose first
// NAL unit type is valid.
func DetectFormat(header []byte) string {
	sc, scLen := findAnnexBStartCode(header, 0)
	if sc == -1 || sc+scLen >= len(header) {
		return "Unknown"
	}
	first := header[sc+scLen]
	if first&0x1F == 0 {
		return "Unknown"
	}
	return "AVC"
}

func formatPixels(value int) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d pixels", value)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div := float64(size)
	exp := 0
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	for div >= unit && exp < len(units)-1 {
		div /= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", div, units[exp])
}
