package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"smarthome-bridge/internal/domain/model"
)

// JSONStore keeps the whole dataset in memory and rewrites the backing file
// after every mutation. mu serialises the read-modify-write cycle so at most
// one snapshot rewrite is in flight.
type JSONStore struct {
	filepath string
	logger   *zap.Logger
	now      func() time.Time

	mu   sync.RWMutex
	data *model.Snapshot
}

// Open loads the snapshot at path, seeding it when the file is missing or unreadable.
func Open(ctx context.Context, path string, logger *zap.Logger) (*JSONStore, error) {
	r := newJSONStore(path, logger)
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func newJSONStore(path string, logger *zap.Logger) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{
		filepath: path,
		logger:   logger.Named("store"),
		now:      time.Now,
		data:     &model.Snapshot{},
	}
}

// Load reads the persisted snapshot. Read or decode failures fall back to the
// seed dataset, which is written immediately; only that write can fail.
func (r *JSONStore) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("no existing database found, initializing with sample data", zap.String("path", r.filepath))
		} else {
			r.logger.Warn("database unreadable, reseeding", zap.String("path", r.filepath), zap.Error(err))
		}
		return r.seedLocked()
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		r.logger.Warn("database corrupt, reseeding", zap.String("path", r.filepath), zap.Error(err))
		return r.seedLocked()
	}
	r.data = &snap
	r.logger.Info("database loaded",
		zap.String("path", r.filepath),
		zap.Int("devices", len(snap.Devices)),
		zap.Int("sensors", len(snap.Sensors)))
	return nil
}

func (r *JSONStore) seedLocked() error {
	r.data = SeedData(r.now())
	if err := r.saveLocked(); err != nil {
		return fmt.Errorf("persisting seed data: %w", err)
	}
	return nil
}

// saveLocked writes the snapshot to a temp sibling and renames it over the target.
func (r *JSONStore) saveLocked() error {
	dir := filepath.Dir(r.filepath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.filepath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, r.filepath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (r *JSONStore) ListDevices(ctx context.Context) ([]*model.Device, error) {
	return r.filterDevices(func(*model.Device) bool { return true }), nil
}

func (r *JSONStore) GetDevice(ctx context.Context, id string) (*model.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findDeviceLocked(id).DeepCopy(), nil
}

// ListDevicesByArea matches the area name exactly, ignoring case.
func (r *JSONStore) ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error) {
	return r.filterDevices(func(d *model.Device) bool { return strings.EqualFold(d.Area, area) }), nil
}

// UpdateDevice merges patch into the device state and persists the snapshot.
// An unknown id returns (nil, nil). A failed write leaves the in-memory state unchanged.
func (r *JSONStore) UpdateDevice(ctx context.Context, id string, patch model.DeviceState) (*model.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.findDeviceLocked(id)
	if d == nil {
		return nil, nil
	}

	prev := d.State
	d.State = prev.Merge(patch)
	if err := r.saveLocked(); err != nil {
		d.State = prev
		return nil, err
	}
	r.logger.Debug("device updated", zap.String("id", id))
	return d.DeepCopy(), nil
}

func (r *JSONStore) ListSensors(ctx context.Context) ([]*model.Sensor, error) {
	return r.filterSensors(func(*model.Sensor) bool { return true }), nil
}

func (r *JSONStore) GetSensor(ctx context.Context, id string) (*model.Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.data.Sensors {
		if s.ID == id {
			return s.DeepCopy(), nil
		}
	}
	return nil, nil
}

func (r *JSONStore) ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error) {
	return r.filterSensors(func(s *model.Sensor) bool { return strings.EqualFold(s.Area, area) }), nil
}

func (r *JSONStore) ListAreas(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.data.Areas...), nil
}

func (r *JSONStore) findDeviceLocked(id string) *model.Device {
	for _, d := range r.data.Devices {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (r *JSONStore) filterDevices(keep func(*model.Device) bool) []*model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Device, 0, len(r.data.Devices))
	for _, d := range r.data.Devices {
		if keep(d) {
			out = append(out, d.DeepCopy())
		}
	}
	return out
}

func (r *JSONStore) filterSensors(keep func(*model.Sensor) bool) []*model.Sensor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Sensor, 0, len(r.data.Sensors))
	for _, s := range r.data.Sensors {
		if keep(s) {
			out = append(out, s.DeepCopy())
		}
	}
	return out
}
