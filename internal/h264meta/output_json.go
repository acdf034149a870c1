package h264meta

import (
	"bytes"
	"encoding/json"
)

type jsonKV struct {
	Key string
	Val string
	Raw bool
}

func RenderJSON(reports []Report) string {
	if len(reports) == 1 {
		return renderJSONReport(reports[0]) + "\n"
	}
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, report := range reports {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(renderJSONReport(report))
	}
	buf.WriteString("\n]")
	return buf.String() + "\n"
}

func renderJSONReport(report Report) string {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	writeJSONField(&buf, "creatingLibrary", renderJSONObject([]jsonKV{
		{Key: "name", Val: AppName},
		{Key: "version", Val: FormatVersion(AppVersion)},
		{Key: "url", Val: AppURL},
	}), true)
	buf.WriteString(",\n")
	writeJSONField(&buf, "media", renderJSONMedia(report), true)
	if len(report.Warnings) > 0 {
		buf.WriteString(",\n")
		warnings := make([]string, 0, len(report.Warnings))
		for _, warning := range report.Warnings {
			warnings = append(warnings, renderJSONString(warning))
		}
		writeJSONField(&buf, "warnings", renderJSONArray(warnings), true)
	}
	buf.WriteString("\n}")
	return buf.String()
}

func renderJSONMedia(report Report) string {
	tracks := make([]string, 0, len(report.Streams)+1)
	tracks = append(tracks, renderJSONTrack(report.General))
	for _, stream := range report.Streams {
		tracks = append(tracks, renderJSONTrack(stream))
	}
	var buf bytes.Buffer
	buf.WriteString("{")
	writeJSONField(&buf, "@ref", report.Ref, false)
	buf.WriteString(",")
	writeJSONField(&buf, "track", renderJSONArray(tracks), true)
	buf.WriteString("}")
	return buf.String()
}

func renderJSONTrack(stream Stream) string {
	fields := []jsonKV{{Key: "@type", Val: string(stream.Kind)}}
	for _, field := range stream.Fields {
		fields = append(fields, jsonKV{Key: jsonFieldName(field.Name), Val: field.Value})
	}
	return renderJSONObject(fields)
}

func renderJSONArray(items []string) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, item := range items {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(item)
	}
	buf.WriteString("]")
	return buf.String()
}

func renderJSONObject(fields []jsonKV) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(",")
		}
		writeJSONField(&buf, field.Key, field.Val, field.Raw)
	}
	buf.WriteString("}")
	return buf.String()
}

func writeJSONField(buf *bytes.Buffer, key, value string, raw bool) {
	buf.WriteString("\"")
	buf.WriteString(key)
	buf.WriteString("\":")
	if raw {
		buf.WriteString(value)
		return
	}
	buf.WriteString(renderJSONString(value))
}

func renderJSONString(value string) string {
	data, _ := json.Marshal(value)
	return string(data)
}

// jsonFieldName squashes a display name to a compact JSON key: spaces
// removed, words capitalized.
func jsonFieldName(name string) string {
	out := make([]byte, 0, len(name))
	upper := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == ' ':
			upper = true
		case c >= 'a' && c <= 'z' && upper:
			out = append(out, c-'a'+'A')
			upper = false
		default:
			out = append(out, c)
			upper = false
		}
	}
	return string(out)
}
