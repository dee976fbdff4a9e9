package translator

import (
	"math"

	"github.com/amimof/huego"

	"smarthome-bridge/internal/domain/model"
)

// HueState renders a light the way a Hue bridge reports it: bri is 0-254.
func HueState(d *model.Device) *huego.State {
	state := &huego.State{On: d.State.IsOn(), Reachable: true}
	if d.State.Brightness != nil {
		state.Bri = uint8(math.Round(float64(model.ClampPercent(*d.State.Brightness)) * 254 / 100))
	}
	return state
}

// HueLight wraps a light device as a huego.Light for Hue-speaking clients.
// Non-light devices return nil.
func HueLight(d *model.Device) *huego.Light {
	if d == nil || d.Type != model.DeviceTypeLight {
		return nil
	}
	return &huego.Light{
		Name:             d.Name,
		Type:             "Dimmable light",
		ModelID:          "LWB010",
		ManufacturerName: "Philips",
		UniqueID:         d.ID,
		State:            HueState(d),
	}
}

// PercentFromHue converts a Hue bri value (0-254) to a 0-100 percentage.
func PercentFromHue(bri uint8) int {
	return int(math.Round(float64(bri) * 100 / 254))
}
