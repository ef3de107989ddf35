package scrape

import (
	"sort"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

// SummarizeDevices derives the devices module from one poll's device table.
// The previous summary is merge input for tracked-device continuity; the
// function itself keeps no state between polls.
func SummarizeDevices(devices []model.DeviceRecord, tracked []string, previous *model.DevicesSummary, now time.Time) model.DevicesSummary {
	sorted := make([]model.DeviceRecord, len(devices))
	copy(sorted, devices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return durationSeconds(sorted[i].OnlineTime) < durationSeconds(sorted[j].OnlineTime)
	})

	summary := model.DevicesSummary{
		DeviceCount: model.Metric{Value: len(sorted)},
		ConnectedDevices: model.Metric{
			Value: len(sorted),
			Attributes: map[string]any{
				"devices":      sorted,
				"device_count": len(sorted),
				"last_updated": now.UTC().Format(time.RFC3339),
			},
		},
		Detailed: mergeDetailed(sorted, tracked, previous, now),
	}

	if len(sorted) == 0 {
		summary.TopDownloaderSpeed = model.Metric{Value: 0.0}
		summary.TopDownloaderMAC = model.Metric{Value: "None"}
		summary.TopDownloaderHostname = model.Metric{Value: "None"}
		summary.TopUploaderSpeed = model.Metric{Value: 0.0}
		summary.TopUploaderMAC = model.Metric{Value: "None"}
		summary.TopUploaderHostname = model.Metric{Value: "None"}
		summary.TotalDownSpeed = model.Metric{Value: 0.0}
		summary.TotalUpSpeed = model.Metric{Value: 0.0}
		return summary
	}

	topDown, topUp := sorted[0], sorted[0]
	var totalDown, totalUp float64
	for _, device := range sorted {
		if device.DownloadMbps > topDown.DownloadMbps {
			topDown = device
		}
		if device.UploadMbps > topUp.UploadMbps {
			topUp = device
		}
		totalDown += device.DownloadMbps
		totalUp += device.UploadMbps
	}

	summary.TopDownloaderSpeed = model.Metric{Value: topDown.DownloadMbps}
	summary.TopDownloaderMAC = model.Metric{Value: topDown.MAC}
	summary.TopDownloaderHostname = model.Metric{Value: topDown.Hostname}
	summary.TopUploaderSpeed = model.Metric{Value: topUp.UploadMbps}
	summary.TopUploaderMAC = model.Metric{Value: topUp.MAC}
	summary.TopUploaderHostname = model.Metric{Value: topUp.Hostname}
	summary.TotalDownSpeed = model.Metric{Value: totalDown}
	summary.TotalUpSpeed = model.Metric{Value: totalUp}
	return summary
}

// mergeDetailed stamps tracked devices with last_seen and carries offline
// tracked devices forward from the previous poll. last_seen never
// regresses, guarding against clock or ordering anomalies.
func mergeDetailed(devices []model.DeviceRecord, tracked []string, previous *model.DevicesSummary, now time.Time) map[string]model.DeviceRecord {
	if len(tracked) == 0 {
		return nil
	}
	var prevDetailed map[string]model.DeviceRecord
	if previous != nil {
		prevDetailed = previous.Detailed
	}

	trackedSet := make(map[string]struct{}, len(tracked))
	for _, key := range tracked {
		trackedSet[key] = struct{}{}
	}

	detailed := make(map[string]model.DeviceRecord)
	for _, device := range devices {
		key := device.MAC
		if _, ok := trackedSet[key]; !ok {
			if _, ok := trackedSet[device.Hostname]; !ok {
				continue
			}
			key = device.Hostname
		}
		device.LastSeen = now.Unix()
		if prev, ok := prevDetailed[key]; ok && prev.LastSeen > device.LastSeen {
			device.LastSeen = prev.LastSeen
		}
		detailed[key] = device
	}

	for _, key := range tracked {
		if _, ok := detailed[key]; ok {
			continue
		}
		if prev, ok := prevDetailed[key]; ok {
			detailed[key] = prev
		}
	}
	return detailed
}
