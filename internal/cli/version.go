package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-h264info/internal/h264meta"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "go-h264info, %s\n", h264meta.FormatVersion(appVersion))
}
