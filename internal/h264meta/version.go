package h264meta

import "strings"

const (
	AppName = "go-h264info"
	AppURL  = "https://github.com/autobrr/go-h264info"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

func FormatVersion(version string) string {
	if version == "" || version == "dev" {
		return "dev"
	}
	return "v" + strings.TrimPrefix(version, "v")
}
