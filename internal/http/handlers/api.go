package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/micro-ha/cudy-monitor/internal/model"
	"github.com/micro-ha/cudy-monitor/internal/service"
)

// Poller triggers asynchronous snapshot refresh.
type Poller interface {
	TriggerRefresh()
}

// ConfigProvider exposes current add-on router config status.
type ConfigProvider interface {
	Get() (model.RouterConfig, bool)
}

// API groups HTTP handlers and dependencies.
type API struct {
	service   *service.Service
	poller    Poller
	config    ConfigProvider
	logger    *slog.Logger
	staticDir string
}

// New creates HTTP handlers with explicit dependencies.
func New(svc *service.Service, poller Poller, config ConfigProvider, logger *slog.Logger, staticDir string) *API {
	return &API{
		service:   svc,
		poller:    poller,
		config:    config,
		logger:    logger,
		staticDir: staticDir,
	}
}

// Logger returns request logger used by HTTP middleware.
func (a *API) Logger() *slog.Logger {
	return a.logger
}

// Health reports service liveness and router config status.
func (a *API) Health(w http.ResponseWriter, _ *http.Request) {
	_, configured := a.config.Get()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "configured": configured})
}

// GetSnapshot returns the latest combined snapshot.
func (a *API) GetSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := a.service.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no_snapshot", "No snapshot collected yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ListDevices returns the device list from the latest snapshot.
func (a *API) ListDevices(w http.ResponseWriter, _ *http.Request) {
	devices := a.service.Devices()
	if devices == nil {
		devices = []model.DeviceRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// GetDevice returns one device by tracked key, MAC or hostname.
func (a *API) GetDevice(w http.ResponseWriter, _ *http.Request, key string) {
	if device, ok := a.service.TrackedDevices()[key]; ok {
		writeJSON(w, http.StatusOK, device)
		return
	}
	for _, device := range a.service.Devices() {
		if strings.EqualFold(device.MAC, key) || device.Hostname == key {
			writeJSON(w, http.StatusOK, device)
			return
		}
	}
	writeError(w, http.StatusNotFound, "device_not_found", "Device not found")
}

// Refresh schedules an immediate poll.
func (a *API) Refresh(w http.ResponseWriter, _ *http.Request) {
	a.poller.TriggerRefresh()
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "scheduled"})
}

// Validate checks the configured router credentials with a one-shot login.
func (a *API) Validate(w http.ResponseWriter, r *http.Request) {
	valid, err := a.service.Validate(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": valid})
}

// Reboot asks the router to reboot.
func (a *API) Reboot(w http.ResponseWriter, r *http.Request) {
	ok, err := a.service.Reboot(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadGateway, "reboot_failed", "Router rejected the reboot request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "rebooting"})
}

// Static serves frontend assets and SPA fallback.
func (a *API) Static(w http.ResponseWriter, r *http.Request) {
	if a.staticDir == "" {
		writeError(w, http.StatusNotFound, "frontend_missing", "Frontend dist not found")
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}
	cleanPath := strings.TrimPrefix(filepath.Clean("/"+path), "/")
	fullPath := filepath.Join(a.staticDir, cleanPath)
	if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
		http.ServeFile(w, r, fullPath)
		return
	}
	http.ServeFile(w, r, filepath.Join(a.staticDir, "index.html"))
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrIntegrationNotConfigured) {
		writeError(w, http.StatusConflict, "not_configured", "Integration is not configured")
		return
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusGatewayTimeout, "timeout", "Router did not respond in time")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
