package h264meta

// Options control the extraction pass.
type Options struct {
	// ExtractAll starts a fresh sub-document whenever an already handled
	// NAL type reappears. Off by default: only the first occurrence of
	// each relevant type is processed.
	ExtractAll bool
	// ParsePictureTiming gates the experimental VUI timing decode and the
	// picture timing SEI parse. Off by default.
	ParsePictureTiming bool
	// Diagnostics, when set, receives one event per NAL unit including
	// types that are never decoded.
	Diagnostics DiagnosticSink
}

// Document holds the metadata extracted from one sub-document of the
// stream. Width and Height are set at most once per document and only
// when they pass the sanity bounds.
type Document struct {
	Width   int
	Height  int
	HasSize bool
	Fields  []Field
}

func (d Document) empty() bool {
	return !d.HasSize && len(d.Fields) == 0
}

// Result is the outcome of one extraction pass.
type Result struct {
	Documents []Document
	Warnings  []string
}

// extractor drives one pass over the stream, owning the per-document
// state that SPS and SEI parses share.
type extractor struct {
	opts    Options
	res     Result
	doc     Document
	vui     vuiTimingState
	handled map[byte]bool
}

// Extract scans an Annex-B H.264 elementary stream for SPS dimensions and
// MDPM vendor metadata. The input must already be resident in memory; the
// pass is single-threaded and always terminates.
func Extract(data []byte, opts Options) Result {
	x := &extractor{opts: opts, handled: map[byte]bool{}}
	scanNALUnits(data, x.handleNAL)
	x.flush()
	return x.res
}

func (x *extractor) handleNAL(unit nalUnit) bool {
	if x.opts.Diagnostics != nil {
		x.opts.Diagnostics.NALUnit(unit.kind, len(unit.rbsp))
	}
	if unit.forbidden {
		x.warn("forbidden_zero_bit set, aborting stream parse")
		return false
	}
	switch unit.kind {
	case nalTypeSPS, nalTypeSEI:
		if x.handled[unit.kind] {
			if !x.opts.ExtractAll {
				return true
			}
			x.flush()
		}
		x.handled[unit.kind] = true
		if unit.kind == nalTypeSPS {
			x.handleSPS(unit.rbsp)
		} else {
			x.handleSEI(unit.rbsp)
		}
	}
	return true
}

func (x *extractor) handleSPS(rbsp []byte) {
	info, ok := parseSPS(rbsp, x.opts.ParsePictureTiming, &x.vui)
	if !ok || !info.validDimension || x.doc.HasSize {
		return
	}
	x.doc.Width = info.width
	x.doc.Height = info.height
	x.doc.HasSize = true
}

func (x *extractor) handleSEI(rbsp []byte) {
	h := seiHandler{
		userData: func(payload []byte) {
			if !walkMDPM(payload, x.addEntry) {
				x.warn("out-of-sequence MDPM tag ID, directory truncated")
			}
		},
	}
	if x.opts.ParsePictureTiming {
		h.timing = func(payload []byte) {
			if tc := parsePictureTiming(payload, &x.vui); tc != "" {
				x.doc.Fields = appendFieldUnique(x.doc.Fields, Field{Name: "Time code", Value: tc})
			}
		}
	}
	iterateSEI(rbsp, h)
}

func (x *extractor) addEntry(e mdpmEntry) {
	if field, ok := decodeMDPMEntry(e); ok {
		x.doc.Fields = appendFieldUnique(x.doc.Fields, field)
	}
}

// flush closes the current sub-document and resets all per-document
// state: VUI timing, handled NAL types, dimensions.
func (x *extractor) flush() {
	if !x.doc.empty() {
		x.res.Documents = append(x.res.Documents, x.doc)
	}
	x.doc = Document{}
	x.vui = vuiTimingState{}
	x.handled = map[byte]bool{}
}

func (x *extractor) warn(msg string) {
	x.res.Warnings = append(x.res.Warnings, msg)
}
