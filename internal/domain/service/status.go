package service

import (
	"context"
	"fmt"
	"strconv"

	"smarthome-bridge/internal/domain/model"
)

func (s *SmartHomeService) GetDeviceStatus(ctx context.Context, id string) model.Result[model.DeviceStatus] {
	res := s.GetDevice(ctx, id)
	if !res.OK() {
		return model.Result[model.DeviceStatus]{Outcome: res.Outcome, Err: res.Err}
	}
	return model.Ok(model.DeviceStatus{Device: res.Value, Status: DescribeDevice(res.Value)})
}

func (s *SmartHomeService) GetSensorStatus(ctx context.Context, id string) model.Result[model.SensorStatus] {
	res := s.GetSensor(ctx, id)
	if !res.OK() {
		return model.Result[model.SensorStatus]{Outcome: res.Outcome, Err: res.Err}
	}
	return model.Ok(model.SensorStatus{Sensor: res.Value, Status: DescribeSensor(res.Value)})
}

// DescribeDevice renders "<name> in <area> is <state>" for the device type.
func DescribeDevice(d *model.Device) string {
	st := d.State
	var desc string
	switch d.Type {
	case model.DeviceTypeLight:
		if st.IsOn() {
			desc = fmt.Sprintf("on at %d%% brightness", intOrZero(st.Brightness))
		} else {
			desc = "off"
		}
	case model.DeviceTypeThermostat:
		if st.Temperature != nil {
			desc = fmt.Sprintf("set to %s°C", formatFloat(*st.Temperature))
		} else {
			desc = "set to an unknown temperature"
		}
	case model.DeviceTypeDoorLock:
		if st.Locked != nil && *st.Locked {
			desc = "locked"
		} else {
			desc = "unlocked"
		}
	case model.DeviceTypeFan:
		if st.IsOn() {
			desc = fmt.Sprintf("on at %d%% speed", intOrZero(st.Speed))
		} else {
			desc = "off"
		}
	default:
		if st.Power != nil {
			desc = string(*st.Power)
		} else {
			desc = "unknown"
		}
	}
	return fmt.Sprintf("%s in %s is %s", d.Name, d.Area, desc)
}

// DescribeSensor renders "<name> in <area>: <value><unit>".
func DescribeSensor(s *model.Sensor) string {
	return fmt.Sprintf("%s in %s: %s%s", s.Name, s.Area, formatValue(s.State.Value), s.State.Unit)
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case nil:
		return "unknown"
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
