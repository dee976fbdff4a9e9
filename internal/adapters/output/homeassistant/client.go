package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"smarthome-bridge/internal/ports"
)

const DefaultTimeout = 10 * time.Second

// Client talks to the hub REST API under <url>/api. It holds no entity state;
// every query goes to the hub.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	connected  atomic.Bool
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:        strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("homeassistant"),
	}
}

// IsEnabled reports whether both endpoint and credential are configured.
func (c *Client) IsEnabled() bool {
	return c.url != "" && c.token != ""
}

// ConnectionStatus is the result of the last TestConnection call.
func (c *Client) ConnectionStatus() bool {
	return c.connected.Load()
}

// TestConnection checks GET /api/ answers {"message": "API running."}.
func (c *Client) TestConnection(ctx context.Context) (bool, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/", nil, &res); err != nil {
		c.connected.Store(false)
		return false, err
	}
	ok := res.Message == "API running."
	c.connected.Store(ok)
	if ok {
		c.logger.Info("connected to Home Assistant")
	}
	return ok, nil
}

func (c *Client) GetConfig(ctx context.Context) (*ports.HubConfig, error) {
	var cfg ports.HubConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) GetServices(ctx context.Context) ([]ports.HubService, error) {
	var services []ports.HubService
	if err := c.do(ctx, http.MethodGet, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) GetAllStates(ctx context.Context) ([]ports.Entity, error) {
	var states []ports.Entity
	if err := c.do(ctx, http.MethodGet, "/states", nil, &states); err != nil {
		return nil, err
	}
	for i := range states {
		normalize(&states[i])
	}
	return states, nil
}

func (c *Client) GetState(ctx context.Context, entityID string) (*ports.Entity, error) {
	var entity ports.Entity
	if err := c.do(ctx, http.MethodGet, "/states/"+url.PathEscape(entityID), nil, &entity); err != nil {
		return nil, err
	}
	normalize(&entity)
	return &entity, nil
}

func (c *Client) GetEntitiesByDomain(ctx context.Context, domain string) ([]ports.Entity, error) {
	states, err := c.GetAllStates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Entity, 0)
	for _, e := range states {
		if strings.HasPrefix(e.EntityID, domain+".") {
			out = append(out, e)
		}
	}
	return out, nil
}

// CallService posts payload to /api/services/{domain}/{service}.
func (c *Client) CallService(ctx context.Context, domain, service string, payload map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	path := fmt.Sprintf("/services/%s/%s", url.PathEscape(domain), url.PathEscape(service))
	if err := c.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return err
	}
	c.logger.Debug("called service",
		zap.String("service", domain+"."+service),
		zap.Any("entity_id", payload["entity_id"]))
	return nil
}

// TurnOn switches an entity on. brightnessPct is only sent for lights.
func (c *Client) TurnOn(ctx context.Context, entityID string, brightnessPct *int) error {
	domain := DomainOf(entityID)
	payload := map[string]interface{}{"entity_id": entityID}
	if brightnessPct != nil && domain == "light" {
		payload["brightness"] = PercentToBrightness(*brightnessPct)
	}
	return c.CallService(ctx, domain, "turn_on", payload)
}

func (c *Client) TurnOff(ctx context.Context, entityID string) error {
	return c.CallService(ctx, DomainOf(entityID), "turn_off", map[string]interface{}{"entity_id": entityID})
}

func (c *Client) SetBrightness(ctx context.Context, entityID string, pct int) error {
	return c.CallService(ctx, "light", "turn_on", map[string]interface{}{
		"entity_id":  entityID,
		"brightness": PercentToBrightness(pct),
	})
}

func (c *Client) SetTemperature(ctx context.Context, entityID string, celsius float64) error {
	return c.CallService(ctx, "climate", "set_temperature", map[string]interface{}{
		"entity_id":   entityID,
		"temperature": celsius,
	})
}

func (c *Client) Lock(ctx context.Context, entityID string) error {
	return c.CallService(ctx, "lock", "lock", map[string]interface{}{"entity_id": entityID})
}

func (c *Client) Unlock(ctx context.Context, entityID string) error {
	return c.CallService(ctx, "lock", "unlock", map[string]interface{}{"entity_id": entityID})
}

func (c *Client) SetFanSpeed(ctx context.Context, entityID string, pct int) error {
	return c.CallService(ctx, "fan", "set_percentage", map[string]interface{}{
		"entity_id":  entityID,
		"percentage": pct,
	})
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if !c.IsEnabled() {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+"/api"+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("homeassistant: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("homeassistant: decoding %s: %w", path, err)
	}
	return nil
}

// normalize strips large attributes and rescales light brightness to 0-100.
func normalize(e *ports.Entity) {
	if e.Attributes == nil {
		e.Attributes = map[string]interface{}{}
		return
	}
	delete(e.Attributes, "entity_picture")
	delete(e.Attributes, "entity_picture_local")
	delete(e.Attributes, "source_list")
	delete(e.Attributes, "sound_mode_list")

	if DomainOf(e.EntityID) != "light" {
		return
	}
	if raw, ok := e.Attributes["brightness"].(float64); ok {
		e.Attributes["brightness"] = float64(BrightnessToPercent(raw))
	}
}

// DomainOf returns the part of an entity id before the first ".".
func DomainOf(entityID string) string {
	domain, _, _ := strings.Cut(entityID, ".")
	return domain
}

// PercentToBrightness converts 0-100 to the hub's 0-255 scale.
func PercentToBrightness(pct int) int {
	return int(math.Round(float64(pct) / 100 * 255))
}

// BrightnessToPercent converts the hub's 0-255 scale to 0-100.
func BrightnessToPercent(raw float64) int {
	return int(math.Round(raw / 255 * 100))
}
