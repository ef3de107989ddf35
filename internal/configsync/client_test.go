package configsync

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cudy_monitor/config" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer token-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{
			"configured": true,
			"version": 7,
			"host": "192.168.10.1",
			"username": "admin",
			"password": "secret",
			"ssl": false,
			"poll_interval_sec": 30,
			"device_list": ["AA:BB:CC:DD:EE:01"],
			"bandwidth_iface": "eth1"
		}`)
	}))
	defer server.Close()

	result, err := NewClient(server.URL, "token-1").FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("fetch config: %v", err)
	}
	if !result.Configured {
		t.Fatalf("expected configured result")
	}
	cfg := result.Config
	if cfg.Version != 7 || cfg.Host != "192.168.10.1" || cfg.BandwidthIface != "eth1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.DeviceList) != 1 || cfg.DeviceList[0] != "AA:BB:CC:DD:EE:01" {
		t.Fatalf("unexpected device list: %v", cfg.DeviceList)
	}
}

func TestFetchConfigClampsPollInterval(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"configured": true, "host": "192.168.10.1", "poll_interval_sec": 1}`)
	}))
	defer server.Close()

	result, err := NewClient(server.URL, "").FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("fetch config: %v", err)
	}
	if result.Config.PollIntervalSec != 5 {
		t.Fatalf("expected poll interval floor 5, got %d", result.Config.PollIntervalSec)
	}
}

func TestFetchConfigNotConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"configured": false}`)
	}))
	defer server.Close()

	result, err := NewClient(server.URL, "").FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("fetch config: %v", err)
	}
	if result.Configured {
		t.Fatalf("expected unconfigured result")
	}
}

func TestFetchConfigNotFoundIsUnconfigured(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	result, err := NewClient(server.URL, "").FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("expected 404 treated as unconfigured, got %v", err)
	}
	if result.Configured {
		t.Fatalf("expected unconfigured result")
	}
}

func TestFetchConfigServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, "").FetchConfig(context.Background()); err == nil {
		t.Fatalf("expected error for server failure")
	}
}
