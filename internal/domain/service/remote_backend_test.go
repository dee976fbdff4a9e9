package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

func lightEntity(state string, brightness int) *ports.Entity {
	return &ports.Entity{
		EntityID: "light.kitchen",
		State:    state,
		Attributes: map[string]interface{}{
			"friendly_name": "Kitchen Light",
			"area_id":       "kitchen",
			"brightness":    float64(brightness),
		},
	}
}

func newRemoteService(t *testing.T) (*SmartHomeService, *MockHAPort) {
	ha := new(MockHAPort)
	ha.On("IsEnabled").Return(true)
	backend := SelectBackend(true, ha, newMemStore(), zaptest.NewLogger(t))
	return NewSmartHomeService(backend, zaptest.NewLogger(t)), ha
}

func TestRemote_SetBrightnessRefetches(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("off", 0), nil).Once()
	ha.On("SetBrightness", ctx, "light.kitchen", 60).Return(nil).Once()
	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 60), nil).Once()

	res := s.SetBrightness(ctx, "light.kitchen", 60)
	require.True(t, res.OK())
	assert.Equal(t, 60, *res.Value.State.Brightness)
	assert.True(t, res.Value.State.IsOn())
	assert.Equal(t, "Kitchen", res.Value.Area)

	ha.AssertExpectations(t)
	ha.AssertNumberOfCalls(t, "GetState", 2)
}

func TestRemote_TurnOnLightAtZeroSendsDefault(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("off", 0), nil).Once()
	ha.On("TurnOn", ctx, "light.kitchen", model.Ptr(100)).Return(nil).Once()
	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 100), nil).Once()

	res := s.TurnOn(ctx, "light.kitchen")
	require.True(t, res.OK())
	assert.Equal(t, 100, *res.Value.State.Brightness)
	ha.AssertExpectations(t)
}

func TestRemote_ServiceErrorIsBackendError(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()
	boom := errors.New("500 from hub")

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 30), nil).Once()
	ha.On("TurnOff", ctx, "light.kitchen").Return(boom).Once()

	res := s.TurnOff(ctx, "light.kitchen")
	assert.Equal(t, model.OutcomeBackendError, res.Outcome)
	assert.ErrorIs(t, res.Err, boom)
	ha.AssertNumberOfCalls(t, "GetState", 1)
}

func TestRemote_RefetchErrorIsBackendError(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 30), nil).Once()
	ha.On("TurnOff", ctx, "light.kitchen").Return(nil).Once()
	ha.On("GetState", ctx, "light.kitchen").Return(nil, boom).Once()

	res := s.TurnOff(ctx, "light.kitchen")
	assert.Equal(t, model.OutcomeBackendError, res.Outcome)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRemote_UnknownEntityIsNotFound(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	ha.On("GetState", ctx, "light.ghost").Return(nil, fmt.Errorf("GET /api/states/light.ghost: %w", ports.ErrEntityNotFound))

	assert.Equal(t, model.OutcomeNotFound, s.TurnOn(ctx, "light.ghost").Outcome)
	assert.Equal(t, model.OutcomeNotFound, s.GetDevice(ctx, "light.ghost").Outcome)
	ha.AssertNotCalled(t, "TurnOn", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemote_TypeMismatchCallsNothing(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 30), nil)

	assert.Equal(t, model.OutcomeTypeMismatch, s.Lock(ctx, "light.kitchen").Outcome)
	ha.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
	ha.AssertNumberOfCalls(t, "GetState", 1)
}

func TestRemote_SwitchDimmingBecomesOnOff(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()
	sw := &ports.Entity{EntityID: "switch.heater", State: "off",
		Attributes: map[string]interface{}{"friendly_name": "Garage Heater"}}

	ha.On("GetState", ctx, "switch.heater").Return(sw, nil)
	ha.On("TurnOn", ctx, "switch.heater", (*int)(nil)).Return(nil).Once()

	res := s.SetBrightness(ctx, "switch.heater", 40)
	require.True(t, res.OK())
	ha.AssertExpectations(t)
	ha.AssertNotCalled(t, "SetBrightness", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemote_FanTurnOnAtZeroSetsSpeed(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()
	fan := &ports.Entity{EntityID: "fan.bedroom", State: "off",
		Attributes: map[string]interface{}{"friendly_name": "Bedroom Fan", "percentage": float64(0)}}

	ha.On("GetState", ctx, "fan.bedroom").Return(fan, nil)
	ha.On("SetFanSpeed", ctx, "fan.bedroom", 50).Return(nil).Once()

	require.True(t, s.TurnOn(ctx, "fan.bedroom").OK())
	ha.AssertExpectations(t)
}

func TestRemote_UpdateStateUnsupportedField(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	ha.On("GetState", ctx, "light.kitchen").Return(lightEntity("on", 30), nil)

	res := s.UpdateState(ctx, "light.kitchen", model.DeviceState{Open: model.Ptr(true)})
	assert.Equal(t, model.OutcomeBackendError, res.Outcome)
}

func TestRemote_ListsAndAreas(t *testing.T) {
	s, ha := newRemoteService(t)
	ctx := context.Background()

	states := []ports.Entity{
		*lightEntity("on", 30),
		{EntityID: "lock.front_door", State: "locked",
			Attributes: map[string]interface{}{"friendly_name": "Front Door Lock", "area_id": "entrance"}},
		{EntityID: "sensor.kitchen_temp", State: "21.4",
			Attributes: map[string]interface{}{"friendly_name": "Kitchen Temp", "area_id": "kitchen",
				"device_class": "temperature", "unit_of_measurement": "°C"}},
		{EntityID: "automation.night", State: "on",
			Attributes: map[string]interface{}{"friendly_name": "Night"}},
		{EntityID: "light.x", State: "off", Attributes: map[string]interface{}{}},
	}
	ha.On("GetAllStates", ctx).Return(states, nil)

	devices, err := s.ListDevices(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 3)

	kitchen, err := s.ListDevicesByArea(ctx, "KITCHEN")
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, "light.kitchen", kitchen[0].ID)

	sensors, err := s.ListSensorsByArea(ctx, "kitchen")
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	assert.Equal(t, 21.4, sensors[0].State.Value)

	areas, err := s.ListAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Entrance", "Kitchen"}, areas)
	assert.Equal(t, BackendHomeAssistant, s.Backend())
}

func TestRemote_ListErrorPropagates(t *testing.T) {
	s, ha := newRemoteService(t)
	ha.On("GetAllStates", mock.Anything).Return(nil, errors.New("unreachable"))

	_, err := s.ListDevices(context.Background())
	assert.Error(t, err)
	_, err = s.ListAreas(context.Background())
	assert.Error(t, err)
}

func TestRemote_GetAllDataPropagatesErrors(t *testing.T) {
	s, ha := newRemoteService(t)
	boom := errors.New("unreachable")
	ha.On("GetAllStates", mock.Anything).Return(nil, boom)

	_, err := s.GetAllData(context.Background())
	assert.ErrorIs(t, err, boom)
}
