package model

import (
	"strings"
	"time"
)

// RouterConfig represents a normalized integration configuration payload.
type RouterConfig struct {
	Version         int64     `json:"version"`
	UpdatedAt       time.Time `json:"updated_at"`
	Host            string    `json:"host"`
	Username        string    `json:"username"`
	Password        string    `json:"password"`
	SSL             bool      `json:"ssl"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	DeviceList      []string  `json:"device_list"`
	BandwidthIface  string    `json:"bandwidth_iface"`
}

func (c RouterConfig) PollInterval() time.Duration {
	interval := time.Duration(c.PollIntervalSec) * time.Second
	if interval < 5*time.Second {
		return 5 * time.Second
	}
	return interval
}

// BaseURL returns the scheme://host root of the router's web interface.
// LuCI paths are appended by the client.
func (c RouterConfig) BaseURL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}

	host := strings.TrimSpace(c.Host)
	host = strings.TrimPrefix(strings.TrimPrefix(host, "http://"), "https://")
	host = strings.Trim(host, "/")
	return scheme + "://" + host
}

// TrackedKeys returns the cleaned tracking list (MAC addresses or hostnames).
func (c RouterConfig) TrackedKeys() []string {
	keys := make([]string, 0, len(c.DeviceList))
	for _, item := range c.DeviceList {
		item = strings.TrimSpace(item)
		if item != "" {
			keys = append(keys, item)
		}
	}
	return keys
}

// Iface returns the interface used for bandwidth sampling.
func (c RouterConfig) Iface() string {
	iface := strings.TrimSpace(c.BandwidthIface)
	if iface == "" {
		return "eth0"
	}
	return iface
}
