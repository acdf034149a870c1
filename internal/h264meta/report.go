package h264meta

type StreamKind string

const (
	StreamGeneral StreamKind = "General"
	StreamVideo   StreamKind = "Video"
)

type Field struct {
	Name  string
	Value string
}

type Stream struct {
	Kind   StreamKind
	Fields []Field
}

type Report struct {
	Ref      string
	General  Stream
	Streams  []Stream
	Warnings []string
}
