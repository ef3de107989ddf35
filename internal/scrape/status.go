package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

// The status pages render the firmware version and device count inline with
// a trailing pipe separator rather than as a label/value line pair.
var (
	firmwareRE    = regexp.MustCompile(`Firmware Version\s*([^\s|]+)`)
	deviceCountRE = regexp.MustCompile(`Devices\s*([^\s|]+)`)
)

// ParseSystem reads firmware, hardware and uptime from the detailed system
// status page using the label-line strategy.
func ParseSystem(input string) model.SystemInfo {
	info := model.SystemInfo{Firmware: Unknown, Hardware: Unknown, Uptime: Unknown}
	if strings.TrimSpace(input) == "" {
		return info
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return info
	}

	lines := Lines(doc)
	if value, ok := LabelValue(lines, "Hardware"); ok {
		info.Hardware = value
	}
	if value, ok := LabelValue(lines, "Uptime"); ok {
		info.Uptime = value
	}
	if match := firmwareRE.FindStringSubmatch(doc.Text()); match != nil {
		info.Firmware = strings.TrimSpace(match[1])
	}
	return info
}

// ParseSystemFooter reads firmware and hardware from the footer spans used
// by older firmware families ("HW: <rev> |", "FW: <version> |").
func ParseSystemFooter(input string) model.SystemInfo {
	info := model.SystemInfo{Firmware: Unknown, Hardware: Unknown, Uptime: Unknown}
	if strings.TrimSpace(input) == "" {
		return info
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return info
	}

	doc.Find("span").Each(func(_ int, span *goquery.Selection) {
		text := strings.TrimSpace(span.Text())
		switch {
		case strings.Contains(text, "HW:"):
			info.Hardware = stripFooterTag(text, "HW:")
		case strings.Contains(text, "FW:"):
			info.Firmware = stripFooterTag(text, "FW:")
		}
	})
	return info
}

func stripFooterTag(text, tag string) string {
	text = strings.ReplaceAll(text, tag, "")
	text = strings.ReplaceAll(text, "|", "")
	return strings.TrimSpace(text)
}

// ParseMesh reads the mesh network name and unit count.
func ParseMesh(input string) model.MeshInfo {
	fields := ExtractLines(input, map[string]string{
		"mesh_network": "Device Name",
		"mesh_units":   "Mesh Units",
	})
	return model.MeshInfo{
		Network: fields["mesh_network"],
		Units:   fields["mesh_units"],
	}
}

// ParseWAN reads the WAN status fields.
func ParseWAN(input string) model.WANInfo {
	fields := ExtractLines(input, map[string]string{
		"wan_type":      "Protocol",
		"wan_ip":        "IP Address",
		"wan_uptime":    "Connected Time",
		"wan_public_ip": "Public IP",
		"wan_dns":       "DNS",
	})
	return model.WANInfo{
		Protocol: fields["wan_type"],
		IP:       fields["wan_ip"],
		Uptime:   fields["wan_uptime"],
		PublicIP: fields["wan_public_ip"],
		DNS:      fields["wan_dns"],
	}
}

// ParseLAN reads the LAN status fields, falling back per field to the fixed
// cbi-table container ids used by firmware that renders the table without
// visible labels.
func ParseLAN(input string) model.LANInfo {
	fields := ExtractLines(input, map[string]string{
		"ip_address":     "IP Address",
		"subnet_mask":    "Subnet Mask",
		"gateway":        "Gateway",
		"dns":            "DNS",
		"connected_time": "Connected Time",
	})

	info := model.LANInfo{
		IPAddress:     fields["ip_address"],
		SubnetMask:    fields["subnet_mask"],
		Gateway:       fields["gateway"],
		DNS:           fields["dns"],
		ConnectedTime: fields["connected_time"],
	}
	if strings.TrimSpace(input) == "" {
		return info
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return info
	}

	byID := func(current string, index int) string {
		if current != NotAvailable {
			return current
		}
		if value := ExtractByID(doc, fmt.Sprintf("cbi-table-%d-data", index)); value != Unknown {
			return value
		}
		return current
	}
	info.IPAddress = byID(info.IPAddress, 1)
	info.SubnetMask = byID(info.SubnetMask, 2)
	info.Gateway = byID(info.Gateway, 3)
	info.DNS = byID(info.DNS, 4)
	info.ConnectedTime = byID(info.ConnectedTime, 5)
	return info
}

// ParseDeviceCounts reads the aggregate per-link-type counters from the
// devices status page.
func ParseDeviceCounts(input string) model.DeviceCounts {
	fields := ExtractLines(input, map[string]string{
		"device_count":         "Devices",
		"wifi_24_device_count": "2.4G WiFi",
		"wifi_5_device_count":  "5G WiFi",
		"wired_device_count":   "Wired",
		"mesh_device_count":    "Mesh",
	})
	counts := model.DeviceCounts{
		Total:  fields["device_count"],
		WiFi24: fields["wifi_24_device_count"],
		WiFi5:  fields["wifi_5_device_count"],
		Wired:  fields["wired_device_count"],
		Mesh:   fields["mesh_device_count"],
	}

	if strings.TrimSpace(input) == "" {
		return counts
	}
	// Some firmware renders the total inline instead of as a line pair.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(input)); err == nil {
		if match := deviceCountRE.FindStringSubmatch(doc.Text()); match != nil {
			counts.Total = strings.TrimSpace(match[1])
		}
	}
	return counts
}
