package model

import "time"

// Metric wraps a primary value with optional side metadata, mirroring the
// value/attributes split expected by the Home Assistant integration.
type Metric struct {
	Value      any            `json:"value"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// DeviceRecord is one connected device as reported by the device table.
// Identity key is the MAC address, falling back to hostname for tracked
// devices configured by name.
type DeviceRecord struct {
	Hostname     string  `json:"hostname"`
	IP           string  `json:"ip"`
	MAC          string  `json:"mac"`
	Connection   string  `json:"connection"`
	Signal       string  `json:"signal"`
	OnlineTime   string  `json:"online_time"`
	UploadMbps   float64 `json:"upload_speed"`
	DownloadMbps float64 `json:"download_speed"`

	// LastSeen is set for tracked devices only, epoch seconds. It never
	// regresses across polls.
	LastSeen int64 `json:"last_seen,omitempty"`
}

type SystemInfo struct {
	Firmware string `json:"firmware"`
	Hardware string `json:"hardware"`
	Uptime   string `json:"uptime"`
}

type MeshInfo struct {
	Network string `json:"mesh_network"`
	Units   string `json:"mesh_units"`
}

type WANInfo struct {
	Protocol string `json:"wan_type"`
	IP       string `json:"wan_ip"`
	Uptime   string `json:"wan_uptime"`
	PublicIP string `json:"wan_public_ip"`
	DNS      string `json:"wan_dns"`
}

type LANInfo struct {
	IPAddress     string `json:"ip_address"`
	SubnetMask    string `json:"subnet_mask"`
	Gateway       string `json:"gateway"`
	DNS           string `json:"dns"`
	ConnectedTime string `json:"connected_time"`
}

// DeviceCounts holds the aggregate per-link-type counters from the devices
// status page. Values stay strings; firmware reports them with unit suffixes.
type DeviceCounts struct {
	Total  string `json:"device_count"`
	WiFi24 string `json:"wifi_24_device_count"`
	WiFi5  string `json:"wifi_5_device_count"`
	Wired  string `json:"wired_device_count"`
	Mesh   string `json:"mesh_device_count"`
}

// DevicesSummary is the derived view over the full device table.
type DevicesSummary struct {
	DeviceCount           Metric                  `json:"device_count"`
	ConnectedDevices      Metric                  `json:"connected_devices"`
	TopDownloaderSpeed    Metric                  `json:"top_downloader_speed"`
	TopDownloaderMAC      Metric                  `json:"top_downloader_mac"`
	TopDownloaderHostname Metric                  `json:"top_downloader_hostname"`
	TopUploaderSpeed      Metric                  `json:"top_uploader_speed"`
	TopUploaderMAC        Metric                  `json:"top_uploader_mac"`
	TopUploaderHostname   Metric                  `json:"top_uploader_hostname"`
	TotalDownSpeed        Metric                  `json:"total_down_speed"`
	TotalUpSpeed          Metric                  `json:"total_up_speed"`
	Detailed              map[string]DeviceRecord `json:"detailed,omitempty"`
}

type Bandwidth struct {
	DownloadMbps    float64 `json:"download_mbps"`
	UploadMbps      float64 `json:"upload_mbps"`
	DownloadTotalGB float64 `json:"download_total_gb"`
	UploadTotalGB   float64 `json:"upload_total_gb"`
}

// Snapshot is the combined result of one poll. Every module is always
// present; parsers fill defaults when a page cannot be fetched or read.
type Snapshot struct {
	FetchedAt time.Time      `json:"fetched_at"`
	System    SystemInfo     `json:"system"`
	Mesh      MeshInfo       `json:"mesh"`
	WAN       WANInfo        `json:"wan"`
	LAN       LANInfo        `json:"lan"`
	Counts    DeviceCounts   `json:"device_counts"`
	Devices   DevicesSummary `json:"devices"`
	Bandwidth Bandwidth      `json:"bandwidth"`
}
