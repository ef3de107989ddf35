package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

// ParseDeviceTable extracts connected-device records from the device list
// page. Rows failing extraction are skipped individually; one malformed
// row never aborts the table.
func ParseDeviceTable(input string) []model.DeviceRecord {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil
	}

	var devices []model.DeviceRecord
	doc.Find("tr[id^='cbi-table-']").Each(func(_ int, row *goquery.Selection) {
		if device, ok := parseDeviceRow(row); ok {
			devices = append(devices, device)
		}
	})
	return devices
}

func parseDeviceRow(row *goquery.Selection) (model.DeviceRecord, bool) {
	ip, mac := Unknown, Unknown
	if parts := segments(row.Find("div[id$='-ipmac']")); len(parts) > 0 {
		ip = parts[0]
		if len(parts) > 1 {
			mac = parts[1]
		}
	}

	hostname := CleanText(row.Find("div[id$='-hostnamexs']"))
	if hostname == "" || strings.Contains(hostname, Unknown) {
		hostname = ip
	}

	up, down := "", ""
	if parts := segments(row.Find("div[id$='-speed']")); len(parts) > 1 {
		up, down = parts[0], parts[1]
	}

	device := model.DeviceRecord{
		Hostname:     hostname,
		IP:           ip,
		MAC:          mac,
		Connection:   CleanText(row.Find("div[id$='-iface']")),
		Signal:       CleanText(row.Find("div[id$='-signal']")),
		OnlineTime:   CleanText(row.Find("div[id$='-online']")),
		UploadMbps:   ParseRate(up),
		DownloadMbps: ParseRate(down),
	}
	if device.IP == Unknown && device.MAC == Unknown && device.Hostname == Unknown {
		return model.DeviceRecord{}, false
	}
	return device, true
}
