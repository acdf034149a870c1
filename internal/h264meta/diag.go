package h264meta

import "go.uber.org/zap"

// DiagnosticSink receives one event per scanned NAL unit, including types
// the extractor never decodes. The boundary and emulation-prevention pass
// runs for every unit regardless of whether a sink is attached.
type DiagnosticSink interface {
	NALUnit(kind byte, rbspLen int)
}

// ZapDiagnostics adapts a zap logger to the diagnostic sink.
type ZapDiagnostics struct {
	Log *zap.SugaredLogger
}

func (z ZapDiagnostics) NALUnit(kind byte, rbspLen int) {
	z.Log.Debugw("nal unit", "type", kind, "name", nalTypeName(kind), "rbsp_bytes", rbspLen)
}

func nalTypeName(kind byte) string {
	switch kind {
	case 1:
		return "slice"
	case 5:
		return "IDR slice"
	case nalTypeSEI:
		return "SEI"
	case nalTypeSPS:
		return "SPS"
	case 8:
		return "PPS"
	case 9:
		return "access unit delimiter"
	default:
		return "other"
	}
}
