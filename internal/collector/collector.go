package collector

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/model"
	"github.com/micro-ha/cudy-monitor/internal/scrape"
)

// Fetcher retrieves one LuCI page, returning an empty string on failure.
type Fetcher interface {
	Get(ctx context.Context, path string) string
}

// Collector assembles one combined snapshot per poll. Fetches are issued
// sequentially; the shared session must not be raced by concurrent
// requests.
type Collector struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Collect fetches every module endpoint and assembles the snapshot. A
// failing module degrades to its documented defaults; no module is ever
// omitted. The previous snapshot is merge input for device continuity.
func (c *Collector) Collect(ctx context.Context, fetcher Fetcher, cfg model.RouterConfig, previous *model.Snapshot) *model.Snapshot {
	now := time.Now().UTC()
	snap := &model.Snapshot{FetchedAt: now}

	snap.System = scrape.ParseSystem(fetcher.Get(ctx, "admin/system/status?detail=1"))
	if snap.System.Firmware == scrape.Unknown || snap.System.Hardware == scrape.Unknown {
		footer := scrape.ParseSystemFooter(fetcher.Get(ctx, "admin/system/system"))
		if snap.System.Firmware == scrape.Unknown {
			snap.System.Firmware = footer.Firmware
		}
		if snap.System.Hardware == scrape.Unknown {
			snap.System.Hardware = footer.Hardware
		}
	}

	snap.Mesh = scrape.ParseMesh(fetcher.Get(ctx, "admin/network/mesh/status?detail=1"))
	snap.WAN = scrape.ParseWAN(fetcher.Get(ctx, "admin/network/wan/status?detail=1"))
	snap.LAN = scrape.ParseLAN(fetcher.Get(ctx, "admin/network/lan/status?detail=1"))
	snap.Counts = scrape.ParseDeviceCounts(fetcher.Get(ctx, "admin/network/devices/status?detail=1"))

	devices := scrape.ParseDeviceTable(fetcher.Get(ctx, "admin/network/devices/devlist?detail=1"))
	var prevDevices *model.DevicesSummary
	if previous != nil {
		prevDevices = &previous.Devices
	}
	snap.Devices = scrape.SummarizeDevices(devices, cfg.TrackedKeys(), prevDevices, now)

	layout, known := scrape.LayoutFor(snap.System.Hardware)
	if !known && snap.System.Hardware != scrape.Unknown {
		c.logger.Warn("no bandwidth counter layout for hardware, using stock layout", "hardware", snap.System.Hardware)
	}
	raw := fetcher.Get(ctx, "admin/status/bandwidth?iface="+url.QueryEscape(cfg.Iface()))
	snap.Bandwidth = scrape.ParseBandwidth([]byte(raw), layout)

	return snap
}
