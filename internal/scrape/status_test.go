package scrape

import "testing"

const systemStatusPage = `<div class="cbi-section">
<div>Firmware Version 2.3.5-20240115 | Build 1234</div>
<div>Hardware
V2.0</div>
<div>Uptime
3 days, 04:12:33</div>
</div>`

func TestParseSystem(t *testing.T) {
	info := ParseSystem(systemStatusPage)
	if info.Firmware != "2.3.5-20240115" {
		t.Fatalf("unexpected firmware: %q", info.Firmware)
	}
	if info.Hardware != "V2.0" {
		t.Fatalf("unexpected hardware: %q", info.Hardware)
	}
	if info.Uptime != "3 days, 04:12:33" {
		t.Fatalf("unexpected uptime: %q", info.Uptime)
	}
}

func TestParseSystemEmptyInput(t *testing.T) {
	info := ParseSystem("")
	if info.Firmware != Unknown || info.Hardware != Unknown || info.Uptime != Unknown {
		t.Fatalf("expected Unknown defaults, got %+v", info)
	}
}

func TestParseSystemFooter(t *testing.T) {
	page := `<footer>
<span>HW: V1.0 |</span>
<span>FW: 1.10.40 |</span>
<span>unrelated</span>
</footer>`
	info := ParseSystemFooter(page)
	if info.Hardware != "V1.0" {
		t.Fatalf("unexpected hardware: %q", info.Hardware)
	}
	if info.Firmware != "1.10.40" {
		t.Fatalf("unexpected firmware: %q", info.Firmware)
	}
	if info.Uptime != Unknown {
		t.Fatalf("footer carries no uptime, got %q", info.Uptime)
	}
}

func TestParseSystemFooterMissingSpans(t *testing.T) {
	info := ParseSystemFooter("<footer><span>status ok</span></footer>")
	if info.Hardware != Unknown || info.Firmware != Unknown {
		t.Fatalf("expected Unknown defaults, got %+v", info)
	}
}

func TestParseMesh(t *testing.T) {
	page := `<div>Device Name
HomeMesh
Mesh Units
3</div>`
	info := ParseMesh(page)
	if info.Network != "HomeMesh" || info.Units != "3" {
		t.Fatalf("unexpected mesh info: %+v", info)
	}
}

func TestParseMeshEmptyInput(t *testing.T) {
	info := ParseMesh("")
	if info.Network != NotAvailable || info.Units != NotAvailable {
		t.Fatalf("expected N/A defaults, got %+v", info)
	}
}

func TestParseWAN(t *testing.T) {
	page := `<div>Protocol
DHCP
IP Address
100.64.12.7
Connected Time
1 day, 02:00:00
Public IP
203.0.113.9
DNS
9.9.9.9</div>`
	info := ParseWAN(page)
	if info.Protocol != "DHCP" || info.IP != "100.64.12.7" {
		t.Fatalf("unexpected wan info: %+v", info)
	}
	if info.Uptime != "1 day, 02:00:00" || info.PublicIP != "203.0.113.9" || info.DNS != "9.9.9.9" {
		t.Fatalf("unexpected wan info: %+v", info)
	}
}

func TestParseLANLabelStrategy(t *testing.T) {
	page := `<div>IP Address
192.168.10.1
Subnet Mask
255.255.255.0
Gateway
192.168.10.254
DNS
1.1.1.1
Connected Time
05:00:00</div>`
	info := ParseLAN(page)
	if info.IPAddress != "192.168.10.1" || info.SubnetMask != "255.255.255.0" {
		t.Fatalf("unexpected lan info: %+v", info)
	}
	if info.Gateway != "192.168.10.254" || info.DNS != "1.1.1.1" {
		t.Fatalf("unexpected lan info: %+v", info)
	}
	if info.ConnectedTime != "05:00:00" {
		t.Fatalf("unexpected connected time: %q", info.ConnectedTime)
	}
}

func TestParseLANIDFallback(t *testing.T) {
	// No label lines; values only exist in the fixed containers.
	page := `<table>
<div id="cbi-table-1-data"><p>192.168.10.1</p></div>
<div id="cbi-table-2-data"><p>255.255.255.0</p></div>
<div id="cbi-table-3-data"><p>192.168.10.1</p></div>
</table>`
	info := ParseLAN(page)
	if info.IPAddress != "192.168.10.1" || info.SubnetMask != "255.255.255.0" || info.Gateway != "192.168.10.1" {
		t.Fatalf("expected id fallback values, got %+v", info)
	}
	if info.DNS != NotAvailable || info.ConnectedTime != NotAvailable {
		t.Fatalf("expected N/A for absent containers, got %+v", info)
	}
}

func TestParseDeviceCounts(t *testing.T) {
	page := `<div>Devices 7 |
2.4G WiFi
2
5G WiFi
3
Wired
1
Mesh
0</div>`
	counts := ParseDeviceCounts(page)
	if counts.Total != "7" {
		t.Fatalf("expected inline total override, got %q", counts.Total)
	}
	if counts.WiFi24 != "2" || counts.WiFi5 != "3" || counts.Wired != "1" || counts.Mesh != "0" {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestParseDeviceCountsEmptyInput(t *testing.T) {
	counts := ParseDeviceCounts("")
	if counts.Total != NotAvailable || counts.Mesh != NotAvailable {
		t.Fatalf("expected N/A defaults, got %+v", counts)
	}
}
