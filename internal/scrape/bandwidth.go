package scrape

import (
	"encoding/json"
	"strings"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

// CounterLayout describes where the RX/TX counters sit inside one bandwidth
// sample tuple and how to convert them. Layouts differ per hardware family
// and are enumerated explicitly rather than inferred.
type CounterLayout struct {
	RXIndex      int
	TXIndex      int
	BytesPerUnit float64 // counter units to bytes
	TicksPerSec  float64 // timestamp units per second
}

// Stock firmware reports [timestamp_us, rxBytes, rxPackets, txBytes,
// txPackets]. The WR3000 family ticks its counters in 45-byte units,
// reverse engineered from observed firmware.
var counterLayouts = map[string]CounterLayout{
	"WR3000": {RXIndex: 1, TXIndex: 3, BytesPerUnit: 45, TicksPerSec: 1e6},
}

var defaultLayout = CounterLayout{RXIndex: 1, TXIndex: 3, BytesPerUnit: 1, TicksPerSec: 1e6}

// LayoutFor returns the counter layout for a hardware identifier. Unknown
// hardware falls back to the stock layout; known reports whether the id
// matched an enumerated family.
func LayoutFor(hardware string) (layout CounterLayout, known bool) {
	hardware = strings.ToUpper(strings.TrimSpace(hardware))
	for family, layout := range counterLayouts {
		if strings.HasPrefix(hardware, family) {
			return layout, true
		}
	}
	return defaultLayout, false
}

// ParseBandwidth turns the JSON time series from the bandwidth endpoint
// into instantaneous rates and cumulative totals. Fewer than two samples,
// short tuples or non-numeric fields all yield the zero defaults; counter
// resets clamp to zero instead of reporting negative throughput.
func ParseBandwidth(raw []byte, layout CounterLayout) model.Bandwidth {
	var bw model.Bandwidth

	var samples [][]float64
	if err := json.Unmarshal(raw, &samples); err != nil {
		return bw
	}
	if len(samples) < 2 {
		return bw
	}

	need := layout.RXIndex + 1
	if layout.TXIndex >= layout.RXIndex {
		need = layout.TXIndex + 1
	}
	last := samples[len(samples)-1]
	prev := samples[len(samples)-2]
	if len(last) < need || len(prev) < need {
		return bw
	}

	if timeDelta := last[0] - prev[0]; timeDelta > 0 {
		rx := (last[layout.RXIndex] - prev[layout.RXIndex]) * layout.BytesPerUnit * layout.TicksPerSec / timeDelta
		tx := (last[layout.TXIndex] - prev[layout.TXIndex]) * layout.BytesPerUnit * layout.TicksPerSec / timeDelta
		if rx < 0 {
			rx = 0
		}
		if tx < 0 {
			tx = 0
		}
		bw.DownloadMbps = round2(rx * 8 / 1e6)
		bw.UploadMbps = round2(tx * 8 / 1e6)
	}

	const gib = 1 << 30
	bw.DownloadTotalGB = round2(last[layout.RXIndex] * layout.BytesPerUnit / gib)
	bw.UploadTotalGB = round2(last[layout.TXIndex] * layout.BytesPerUnit / gib)
	return bw
}
