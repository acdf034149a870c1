package h264meta

import (
	"fmt"
	"os"
	"strconv"
)

func AnalyzeFile(path string) (Report, error) {
	return AnalyzeFileWithOptions(path, Options{})
}

// AnalyzeFileWithOptions reads path into memory, verifies it carries an
// Annex-B H.264 elementary stream and runs the extraction pass.
func AnalyzeFileWithOptions(path string, opts Options) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}

	sniff := data
	if len(sniff) > maxSniffBytes {
		sniff = sniff[:maxSniffBytes]
	}
	format := DetectFormat(sniff)
	if format != "AVC" {
		return Report{}, fmt.Errorf("%s: not an H.264 Annex-B elementary stream", path)
	}

	result := Extract(data, opts)

	report := Report{Ref: path}
	report.General = Stream{Kind: StreamGeneral}
	report.General.Fields = append(report.General.Fields,
		Field{Name: "Complete name", Value: path},
		Field{Name: "Format", Value: format},
		Field{Name: "File size", Value: formatBytes(int64(len(data)))},
	)
	for _, doc := range result.Documents {
		stream := Stream{Kind: StreamVideo}
		if doc.HasSize {
			stream.Fields = append(stream.Fields,
				Field{Name: "Width", Value: formatPixels(doc.Width)},
				Field{Name: "Height", Value: formatPixels(doc.Height)},
			)
		}
		stream.Fields = append(stream.Fields, doc.Fields...)
		report.Streams = append(report.Streams, stream)
	}
	report.General.Fields = setStreamCount(report.General.Fields, len(report.Streams))
	report.Warnings = result.Warnings
	return report, nil
}

// AnalyzeFilesWithOptions analyzes each path in turn. Per-file errors are
// folded into the error return once all files were attempted; the count
// reports how many analyses succeeded.
func AnalyzeFilesWithOptions(paths []string, opts Options) ([]Report, int, error) {
	reports := make([]Report, 0, len(paths))
	var firstErr error
	count := 0
	for _, path := range paths {
		report, err := AnalyzeFileWithOptions(path, opts)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, report)
		count++
	}
	if count == 0 && firstErr != nil {
		return nil, 0, firstErr
	}
	return reports, count, nil
}

func setStreamCount(fields []Field, count int) []Field {
	if count <= 1 {
		return fields
	}
	return appendFieldUnique(fields, Field{Name: "Count of video streams", Value: strconv.Itoa(count)})
}
