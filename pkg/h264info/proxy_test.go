package h264info_test

import (
	"testing"

	"github.com/autobrr/go-h264info/pkg/h264info"
)

func TestProxyAPI(t *testing.T) {
	// Smoke test to ensure the proxy can be imported and types are consistent
	var _ h264info.Report
	var _ h264info.StreamKind = h264info.StreamGeneral
}
