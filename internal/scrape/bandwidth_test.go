package scrape

import (
	"testing"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

func TestParseBandwidthRates(t *testing.T) {
	layout, _ := LayoutFor("")
	// Two samples one second apart (microsecond timestamps), 1000 bytes RX
	// and 2000 bytes TX delta.
	raw := []byte(`[[0,1000,10,2000,20],[1000000,2000,20,4000,40]]`)

	bw := ParseBandwidth(raw, layout)
	if bw.DownloadMbps != 0.01 {
		t.Fatalf("expected 0.01 download mbps, got %v", bw.DownloadMbps)
	}
	if bw.UploadMbps != 0.02 {
		t.Fatalf("expected 0.02 upload mbps, got %v", bw.UploadMbps)
	}
}

func TestParseBandwidthCounterResetClampsToZero(t *testing.T) {
	layout, _ := LayoutFor("")
	raw := []byte(`[[0,5000,10,9000,20],[1000000,2000,20,4000,40]]`)

	bw := ParseBandwidth(raw, layout)
	if bw.DownloadMbps != 0 || bw.UploadMbps != 0 {
		t.Fatalf("expected clamped zero rates after counter reset, got %+v", bw)
	}
}

func TestParseBandwidthStructuralErrors(t *testing.T) {
	layout, _ := LayoutFor("")
	cases := []string{
		``,
		`not json`,
		`[]`,
		`[[0,1000,10,2000,20]]`,
		`[[0,1000],[1000000,2000]]`,
		`[[0,"a",10,"b",20],[1000000,"c",20,"d",40]]`,
		`{"iface":"eth0"}`,
	}
	for _, in := range cases {
		if bw := ParseBandwidth([]byte(in), layout); bw != (model.Bandwidth{}) {
			t.Fatalf("expected zero defaults for %q, got %+v", in, bw)
		}
	}
}

func TestParseBandwidthScaledLayout(t *testing.T) {
	layout, known := LayoutFor("WR3000 V1.0")
	if !known {
		t.Fatalf("expected WR3000 layout to be enumerated")
	}
	if layout.BytesPerUnit != 45 {
		t.Fatalf("expected 45-byte counter units, got %v", layout.BytesPerUnit)
	}

	raw := []byte(`[[0,0,0,0,0],[1000000,1000,0,2000,0]]`)
	bw := ParseBandwidth(raw, layout)
	// 1000 units * 45 bytes * 8 bits / 1e6 = 0.36 Mbps.
	if bw.DownloadMbps != 0.36 {
		t.Fatalf("expected scaled download rate 0.36, got %v", bw.DownloadMbps)
	}
	if bw.UploadMbps != 0.72 {
		t.Fatalf("expected scaled upload rate 0.72, got %v", bw.UploadMbps)
	}
}

func TestLayoutForUnknownHardwareFallsBack(t *testing.T) {
	layout, known := LayoutFor("X6 2.1")
	if known {
		t.Fatalf("expected unknown hardware to be flagged")
	}
	if layout != defaultLayout {
		t.Fatalf("expected stock layout fallback, got %+v", layout)
	}
}

func TestParseBandwidthTotals(t *testing.T) {
	layout, _ := LayoutFor("")
	raw := []byte(`[[0,0,0,0,0],[1000000,2147483648,0,1073741824,0]]`)
	bw := ParseBandwidth(raw, layout)
	if bw.DownloadTotalGB != 2 {
		t.Fatalf("expected 2 GB download total, got %v", bw.DownloadTotalGB)
	}
	if bw.UploadTotalGB != 1 {
		t.Fatalf("expected 1 GB upload total, got %v", bw.UploadTotalGB)
	}
}
