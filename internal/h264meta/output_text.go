package h264meta

import (
	"bytes"
	"fmt"
	"strings"
)

func RenderText(reports []Report) string {
	var buf bytes.Buffer
	for i, report := range reports {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeStream(&buf, string(report.General.Kind), report.General)
		for index, stream := range report.Streams {
			buf.WriteString("\n")
			writeStream(&buf, streamTitle(stream.Kind, index+1, len(report.Streams)), stream)
		}
		for _, warning := range report.Warnings {
			buf.WriteString("\n")
			buf.WriteString("Warning : ")
			buf.WriteString(warning)
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
		buf.WriteString(reportByLine())
		buf.WriteString("\n")
	}
	output := strings.TrimRight(buf.String(), "\n")
	return output + "\n\n"
}

func reportByLine() string {
	return fmt.Sprintf("ReportBy : %s - %s", AppName, FormatVersion(AppVersion))
}

func writeStream(buf *bytes.Buffer, title string, stream Stream) {
	buf.WriteString(title)
	buf.WriteString("\n")
	for _, field := range stream.Fields {
		buf.WriteString(padRight(field.Name, 41))
		buf.WriteString(": ")
		buf.WriteString(field.Value)
		buf.WriteString("\n")
	}
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

func streamTitle(kind StreamKind, index, total int) string {
	if total <= 1 || kind == StreamGeneral {
		return string(kind)
	}
	return fmt.Sprintf("%s #%d", kind, index)
}
