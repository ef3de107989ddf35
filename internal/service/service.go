package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/micro-ha/cudy-monitor/internal/collector"
	"github.com/micro-ha/cudy-monitor/internal/configsync"
	"github.com/micro-ha/cudy-monitor/internal/luci"
	"github.com/micro-ha/cudy-monitor/internal/model"
	"github.com/micro-ha/cudy-monitor/internal/storage"
)

var ErrIntegrationNotConfigured = errors.New("integration not configured")

// RouterClient is the authenticated LuCI surface the service depends on.
type RouterClient interface {
	Get(ctx context.Context, path string) string
	Authenticate(ctx context.Context) bool
	Reboot(ctx context.Context) bool
}

type Service struct {
	repo      *storage.Repository
	collector *collector.Collector
	config    *configsync.Manager
	logger    *slog.Logger

	newClient func(cfg model.RouterConfig) RouterClient

	mu            sync.Mutex
	client        RouterClient
	clientVersion int64
	latest        *model.Snapshot
	restored      bool
}

func New(repo *storage.Repository, coll *collector.Collector, cfg *configsync.Manager, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		collector: coll,
		config:    cfg,
		logger:    logger,
		newClient: func(cfg model.RouterConfig) RouterClient {
			return luci.NewClient(cfg, logger)
		},
	}
}

// PollOnce runs one full snapshot cycle: fetch, extract, merge against the
// previous snapshot, persist. The whole cycle is blocking; the poller runs
// it off the request path.
func (s *Service) PollOnce(ctx context.Context) error {
	cfg, ok := s.config.Get()
	if !ok {
		return ErrIntegrationNotConfigured
	}

	client := s.clientFor(cfg)
	previous := s.previousSnapshot(ctx)

	snap := s.collector.Collect(ctx, client, cfg, previous)

	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	if err := s.repo.UpsertTracked(ctx, snap.Devices.Detailed); err != nil {
		return fmt.Errorf("persist tracked devices: %w", err)
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	s.logger.Info("poll completed",
		"devices", snap.Devices.DeviceCount.Value,
		"tracked", len(snap.Devices.Detailed),
		"firmware", snap.System.Firmware,
	)
	return nil
}

// previousSnapshot returns the immediately preceding completed snapshot.
// On the first poll after a restart the persisted snapshot is restored so
// tracked-device continuity crosses process boundaries.
func (s *Service) previousSnapshot(ctx context.Context) *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil {
		return s.latest
	}
	if s.restored {
		return nil
	}
	s.restored = true

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		s.logger.Warn("restoring persisted snapshot failed", "err", err)
		return nil
	}
	if snap == nil {
		return nil
	}
	if detailed, err := s.repo.LoadTracked(ctx); err == nil && len(detailed) > 0 {
		snap.Devices.Detailed = detailed
	}
	return snap
}

// Latest returns the most recent completed snapshot.
func (s *Service) Latest() (*model.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil, false
	}
	return s.latest, true
}

// Devices returns the full device list from the latest snapshot.
func (s *Service) Devices() []model.DeviceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	devices, _ := s.latest.Devices.ConnectedDevices.Attributes["devices"].([]model.DeviceRecord)
	return devices
}

// TrackedDevices returns the detailed section of the latest snapshot.
func (s *Service) TrackedDevices() map[string]model.DeviceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	return s.latest.Devices.Detailed
}

// Validate checks the configured credentials with a one-shot login.
func (s *Service) Validate(ctx context.Context) (bool, error) {
	cfg, ok := s.config.Get()
	if !ok {
		return false, ErrIntegrationNotConfigured
	}
	return s.clientFor(cfg).Authenticate(ctx), nil
}

// Reboot triggers a router reboot through the authenticated client.
func (s *Service) Reboot(ctx context.Context) (bool, error) {
	cfg, ok := s.config.Get()
	if !ok {
		return false, ErrIntegrationNotConfigured
	}
	return s.clientFor(cfg).Reboot(ctx), nil
}

// clientFor reuses the current client while the configuration version is
// unchanged, keeping the session cookie warm between polls.
func (s *Service) clientFor(cfg model.RouterConfig) RouterClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil || s.clientVersion != cfg.Version {
		s.client = s.newClient(cfg)
		s.clientVersion = cfg.Version
	}
	return s.client
}
