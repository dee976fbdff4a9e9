package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smarthome-bridge/internal/domain/model"
)

func openTemp(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "smarthome.json")
	store, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	return store, path
}

func readSnapshot(t *testing.T, path string) model.Snapshot {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	return snap
}

func TestJSONStore_SeedsWhenMissing(t *testing.T) {
	store, path := openTemp(t)
	ctx := context.Background()

	devices, err := store.ListDevices(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 5)

	sensors, err := store.ListSensors(ctx)
	require.NoError(t, err)
	assert.Len(t, sensors, 3)

	areas, err := store.ListAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Living Room", "Bedroom", "Kitchen", "Bathroom", "Garage"}, areas)

	// seeded data is persisted immediately
	snap := readSnapshot(t, path)
	assert.Len(t, snap.Devices, 5)
	assert.Len(t, snap.Sensors, 3)
}

func TestJSONStore_ReseedsWhenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smarthome.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)

	d, err := store.GetDevice(context.Background(), "light-1")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Living Room Ceiling Light", d.Name)
}

func TestJSONStore_LoadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smarthome.json")
	snap := model.Snapshot{
		Areas: []string{"Attic"},
		Devices: []*model.Device{
			{ID: "cam-1", Name: "Attic Camera", Type: model.DeviceTypeCamera, Area: "Attic",
				State: model.DeviceState{Recording: model.Ptr(true)}},
		},
	}
	data, _ := json.Marshal(snap)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	store, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)

	devices, _ := store.ListDevices(context.Background())
	require.Len(t, devices, 1)
	assert.Equal(t, "cam-1", devices[0].ID)
	assert.True(t, *devices[0].State.Recording)
	assert.Nil(t, devices[0].State.Power)
}

func TestJSONStore_ListByAreaIgnoresCase(t *testing.T) {
	store, _ := openTemp(t)
	ctx := context.Background()

	lower, _ := store.ListDevicesByArea(ctx, "living room")
	title, _ := store.ListDevicesByArea(ctx, "Living Room")
	assert.Equal(t, title, lower)
	assert.Len(t, lower, 3)

	partial, _ := store.ListDevicesByArea(ctx, "living")
	assert.Empty(t, partial)

	sensors, _ := store.ListSensorsByArea(ctx, "GARAGE")
	require.Len(t, sensors, 1)
	assert.Equal(t, "motion-1", sensors[0].ID)
}

func TestJSONStore_UpdateMergesAndPersists(t *testing.T) {
	store, path := openTemp(t)
	ctx := context.Background()

	d, err := store.UpdateDevice(ctx, "light-1", model.DeviceState{Power: model.Ptr(model.PowerOn)})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.State.IsOn())
	assert.Equal(t, 0, *d.State.Brightness, "merge keeps untouched fields")

	snap := readSnapshot(t, path)
	assert.Equal(t, model.PowerOn, *snap.Devices[0].State.Power)

	// reopen sees the change
	reopened, err := Open(ctx, path, zap.NewNop())
	require.NoError(t, err)
	d, _ = reopened.GetDevice(ctx, "light-1")
	assert.True(t, d.State.IsOn())
}

func TestJSONStore_UpdateUnknownIsNotAnError(t *testing.T) {
	store, _ := openTemp(t)
	d, err := store.UpdateDevice(context.Background(), "nope", model.DeviceState{Power: model.Ptr(model.PowerOn)})
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestJSONStore_ReturnsCopies(t *testing.T) {
	store, _ := openTemp(t)
	ctx := context.Background()

	d, _ := store.GetDevice(ctx, "light-1")
	*d.State.Brightness = 77

	again, _ := store.GetDevice(ctx, "light-1")
	assert.Equal(t, 0, *again.State.Brightness)
}

func TestJSONStore_WriteFailurePropagates(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "smarthome.json")
	store, err := Open(context.Background(), path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	d, err := store.UpdateDevice(context.Background(), "light-1", model.DeviceState{Power: model.Ptr(model.PowerOn)})
	assert.Error(t, err)
	assert.Nil(t, d)

	// in-memory state rolled back
	cur, _ := store.GetDevice(context.Background(), "light-1")
	assert.False(t, cur.State.IsOn())
}

func TestJSONStore_ConcurrentUpdates(t *testing.T) {
	store, path := openTemp(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i <= 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_, err := store.UpdateDevice(ctx, "fan-1", model.DeviceState{Speed: model.Ptr(v)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// the file always holds a complete snapshot matching memory
	snap := readSnapshot(t, path)
	mem, _ := store.GetDevice(ctx, "fan-1")
	for _, d := range snap.Devices {
		if d.ID == "fan-1" {
			assert.Equal(t, *mem.State.Speed, *d.State.Speed)
		}
	}
	assert.Len(t, snap.Devices, 5)
}

func TestJSONStore_UnloadedIsEmpty(t *testing.T) {
	store := newJSONStore(filepath.Join(t.TempDir(), "smarthome.json"), nil)
	ctx := context.Background()

	devices, err := store.ListDevices(ctx)
	require.NoError(t, err)
	assert.Empty(t, devices)

	d, err := store.GetDevice(ctx, "light-1")
	require.NoError(t, err)
	assert.Nil(t, d)

	areas, err := store.ListAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)
}
