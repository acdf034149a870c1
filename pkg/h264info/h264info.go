// Package h264info is the stable public surface over the internal
// extraction core.
package h264info

import (
	"github.com/autobrr/go-h264info/internal/h264meta"
)

// Types
type StreamKind = h264meta.StreamKind
type Field = h264meta.Field
type Stream = h264meta.Stream
type Report = h264meta.Report
type Options = h264meta.Options
type Document = h264meta.Document
type Result = h264meta.Result
type DiagnosticSink = h264meta.DiagnosticSink

// Constants
const (
	StreamGeneral = h264meta.StreamGeneral
	StreamVideo   = h264meta.StreamVideo
)

// Functions
func Extract(data []byte, opts Options) Result {
	return h264meta.Extract(data, opts)
}

func AnalyzeFile(path string) (Report, error) {
	return h264meta.AnalyzeFile(path)
}

func AnalyzeFileWithOptions(path string, opts Options) (Report, error) {
	return h264meta.AnalyzeFileWithOptions(path, opts)
}

func AnalyzeFilesWithOptions(paths []string, opts Options) ([]Report, int, error) {
	return h264meta.AnalyzeFilesWithOptions(paths, opts)
}

// Rendering
func RenderText(reports []Report) string {
	return h264meta.RenderText(reports)
}

func RenderJSON(reports []Report) string {
	return h264meta.RenderJSON(reports)
}

func FormatVersion(version string) string {
	return h264meta.FormatVersion(version)
}

func SetAppVersion(version string) {
	h264meta.SetAppVersion(version)
}
