package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

// SaveSnapshot persists the latest combined snapshot. A single row is kept;
// history is not a storage concern here.
func (r *Repository) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, body, fetched_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body=excluded.body, fetched_at=excluded.fetched_at`,
		string(body), snap.FetchedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// LoadSnapshot returns the persisted snapshot, or nil when none exists.
func (r *Repository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = 1`).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		if r.logger != nil {
			r.logger.Warn("discarding unreadable persisted snapshot", "err", err)
		}
		return nil, nil
	}
	return &snap, nil
}

// UpsertTracked persists the detailed section so tracked-device continuity
// survives restarts.
func (r *Repository) UpsertTracked(ctx context.Context, detailed map[string]model.DeviceRecord) error {
	if len(detailed) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracked_devices (key, hostname, ip, mac, connection, signal, online_time, upload_mbps, download_mbps, last_seen, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			hostname=excluded.hostname,
			ip=excluded.ip,
			mac=excluded.mac,
			connection=excluded.connection,
			signal=excluded.signal,
			online_time=excluded.online_time,
			upload_mbps=excluded.upload_mbps,
			download_mbps=excluded.download_mbps,
			last_seen=MAX(tracked_devices.last_seen, excluded.last_seen),
			updated_at=excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for key, device := range detailed {
		if _, err := stmt.ExecContext(
			ctx,
			key,
			device.Hostname,
			device.IP,
			device.MAC,
			device.Connection,
			device.Signal,
			device.OnlineTime,
			device.UploadMbps,
			device.DownloadMbps,
			device.LastSeen,
			now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadTracked returns all persisted tracked-device records keyed by MAC or
// hostname.
func (r *Repository) LoadTracked(ctx context.Context) (map[string]model.DeviceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, hostname, ip, mac, connection, signal, online_time, upload_mbps, download_mbps, last_seen
		FROM tracked_devices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]model.DeviceRecord{}
	for rows.Next() {
		var (
			key    string
			device model.DeviceRecord
		)
		if err := rows.Scan(&key, &device.Hostname, &device.IP, &device.MAC, &device.Connection,
			&device.Signal, &device.OnlineTime, &device.UploadMbps, &device.DownloadMbps, &device.LastSeen); err != nil {
			return nil, err
		}
		result[key] = device
	}
	return result, rows.Err()
}
