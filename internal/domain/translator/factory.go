package translator

import (
	"smarthome-bridge/internal/domain/model"
)

type Factory struct {
	strategies map[string]Translator
}

func NewFactory() *Factory {
	light := &LightStrategy{}
	return &Factory{
		strategies: map[string]Translator{
			"light":   light,
			"switch":  light, // switches are plain lights
			"climate": &ClimateStrategy{},
			"lock":    &LockStrategy{},
			"fan":     &FanStrategy{},
		},
	}
}

// GetTranslator returns the strategy for a hub domain, or false when the
// domain does not describe a device.
func (f *Factory) GetTranslator(domain string) (Translator, bool) {
	t, ok := f.strategies[domain]
	return t, ok
}

// DeviceTypeFor maps a hub domain to a device type.
func (f *Factory) DeviceTypeFor(domain string) (model.DeviceType, bool) {
	t, ok := f.GetTranslator(domain)
	if !ok {
		return "", false
	}
	return t.DeviceType(), true
}
