package scrape

import (
	"testing"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

var summaryNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func summaryDevices() []model.DeviceRecord {
	return []model.DeviceRecord{
		{Hostname: "laptop", IP: "192.168.10.20", MAC: "AA:BB:CC:DD:EE:01",
			OnlineTime: "02:10:00", DownloadMbps: 20, UploadMbps: 1},
		{Hostname: "phone", IP: "192.168.10.21", MAC: "AA:BB:CC:DD:EE:02",
			OnlineTime: "00:05:00", DownloadMbps: 5, UploadMbps: 4},
		{Hostname: "printer", IP: "192.168.10.22", MAC: "AA:BB:CC:DD:EE:03",
			OnlineTime: "---", DownloadMbps: 0, UploadMbps: 0},
	}
}

func TestSummarizeDevicesEmpty(t *testing.T) {
	summary := SummarizeDevices(nil, nil, nil, summaryNow)
	if summary.DeviceCount.Value != 0 {
		t.Fatalf("expected zero device count, got %v", summary.DeviceCount.Value)
	}
	if summary.ConnectedDevices.Value != 0 {
		t.Fatalf("expected zero connected devices, got %v", summary.ConnectedDevices.Value)
	}
	if summary.TopDownloaderSpeed.Value != 0.0 || summary.TotalUpSpeed.Value != 0.0 {
		t.Fatalf("expected zero speed metrics: %+v", summary)
	}
	if summary.TopDownloaderMAC.Value != "None" || summary.TopUploaderHostname.Value != "None" {
		t.Fatalf("expected None placeholders: %+v", summary)
	}
	if summary.Detailed != nil {
		t.Fatalf("expected no detailed map without tracked devices, got %v", summary.Detailed)
	}
}

func TestSummarizeDevicesTopTalkers(t *testing.T) {
	summary := SummarizeDevices(summaryDevices(), nil, nil, summaryNow)

	if summary.DeviceCount.Value != 3 {
		t.Fatalf("expected 3 devices, got %v", summary.DeviceCount.Value)
	}
	if summary.TopDownloaderSpeed.Value != 20.0 || summary.TopDownloaderHostname.Value != "laptop" {
		t.Fatalf("unexpected top downloader: %+v", summary)
	}
	if summary.TopUploaderSpeed.Value != 4.0 || summary.TopUploaderMAC.Value != "AA:BB:CC:DD:EE:02" {
		t.Fatalf("unexpected top uploader: %+v", summary)
	}
	if summary.TotalDownSpeed.Value != 25.0 || summary.TotalUpSpeed.Value != 5.0 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
}

func TestSummarizeDevicesTieBreakFirstWins(t *testing.T) {
	devices := []model.DeviceRecord{
		{Hostname: "a", MAC: "AA:00", OnlineTime: "00:01:00", DownloadMbps: 10, UploadMbps: 1},
		{Hostname: "b", MAC: "BB:00", OnlineTime: "00:02:00", DownloadMbps: 10, UploadMbps: 1},
	}
	summary := SummarizeDevices(devices, nil, nil, summaryNow)
	if summary.TopDownloaderHostname.Value != "a" {
		t.Fatalf("expected first device to win the tie, got %v", summary.TopDownloaderHostname.Value)
	}
}

func TestSummarizeDevicesSortsByOnlineTime(t *testing.T) {
	summary := SummarizeDevices(summaryDevices(), nil, nil, summaryNow)
	listed, ok := summary.ConnectedDevices.Attributes["devices"].([]model.DeviceRecord)
	if !ok {
		t.Fatalf("expected device list attribute, got %T", summary.ConnectedDevices.Attributes["devices"])
	}
	var got []string
	for _, device := range listed {
		got = append(got, device.OnlineTime)
	}
	expected := []string{"00:05:00", "02:10:00", "---"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, got)
		}
	}
	if summary.ConnectedDevices.Attributes["last_updated"] != "2025-03-14T12:00:00Z" {
		t.Fatalf("unexpected last_updated: %v", summary.ConnectedDevices.Attributes["last_updated"])
	}
}

func TestMergeDetailedStampsTracked(t *testing.T) {
	tracked := []string{"AA:BB:CC:DD:EE:01", "phone"}
	summary := SummarizeDevices(summaryDevices(), tracked, nil, summaryNow)

	if len(summary.Detailed) != 2 {
		t.Fatalf("expected 2 tracked records, got %v", summary.Detailed)
	}
	laptop, ok := summary.Detailed["AA:BB:CC:DD:EE:01"]
	if !ok || laptop.LastSeen != summaryNow.Unix() {
		t.Fatalf("expected MAC-keyed record stamped with poll time, got %+v", laptop)
	}
	// A device tracked by hostname is keyed by hostname.
	if _, ok := summary.Detailed["phone"]; !ok {
		t.Fatalf("expected hostname-keyed record, got %v", summary.Detailed)
	}
}

func TestMergeDetailedLastSeenNeverRegresses(t *testing.T) {
	tracked := []string{"AA:BB:CC:DD:EE:01"}
	future := summaryNow.Add(time.Hour).Unix()
	previous := &model.DevicesSummary{
		Detailed: map[string]model.DeviceRecord{
			"AA:BB:CC:DD:EE:01": {Hostname: "laptop", MAC: "AA:BB:CC:DD:EE:01", LastSeen: future},
		},
	}

	summary := SummarizeDevices(summaryDevices(), tracked, previous, summaryNow)
	if got := summary.Detailed["AA:BB:CC:DD:EE:01"].LastSeen; got != future {
		t.Fatalf("expected last_seen to keep the larger value %d, got %d", future, got)
	}
}

func TestMergeDetailedCarriesOfflineForward(t *testing.T) {
	tracked := []string{"AA:BB:CC:DD:EE:01", "AA:BB:CC:DD:EE:99"}
	earlier := summaryNow.Add(-time.Hour).Unix()
	previous := &model.DevicesSummary{
		Detailed: map[string]model.DeviceRecord{
			"AA:BB:CC:DD:EE:99": {Hostname: "tablet", MAC: "AA:BB:CC:DD:EE:99", LastSeen: earlier},
		},
	}

	summary := SummarizeDevices(summaryDevices(), tracked, previous, summaryNow)
	carried, ok := summary.Detailed["AA:BB:CC:DD:EE:99"]
	if !ok {
		t.Fatalf("expected offline tracked device carried forward, got %v", summary.Detailed)
	}
	if carried.LastSeen != earlier || carried.Hostname != "tablet" {
		t.Fatalf("expected previous record preserved unchanged, got %+v", carried)
	}
}

func TestMergeDetailedRunsWithZeroDevices(t *testing.T) {
	tracked := []string{"AA:BB:CC:DD:EE:01"}
	previous := &model.DevicesSummary{
		Detailed: map[string]model.DeviceRecord{
			"AA:BB:CC:DD:EE:01": {Hostname: "laptop", MAC: "AA:BB:CC:DD:EE:01", LastSeen: 100},
		},
	}

	summary := SummarizeDevices(nil, tracked, previous, summaryNow)
	if _, ok := summary.Detailed["AA:BB:CC:DD:EE:01"]; !ok {
		t.Fatalf("expected tracked record kept through an empty poll, got %v", summary.Detailed)
	}
}
