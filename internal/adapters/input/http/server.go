package http

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/amimof/huego"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/domain/translator"
	"smarthome-bridge/internal/ports"
)

type Server struct {
	home    ports.SmartHomePort
	hub     ports.HomeAssistantPort
	logger  *zap.Logger
	httpLog bool
}

// NewServer wires the REST surface over the facade. hub may be nil; the
// /api/hub routes then answer 503.
func NewServer(home ports.SmartHomePort, hub ports.HomeAssistantPort, logger *zap.Logger, httpLog bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{home: home, hub: hub, logger: logger.Named("http"), httpLog: httpLog}
}

// HTTPServer returns a configured *http.Server listening on port.
func (s *Server) HTTPServer(port uint) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.handleHealthCheck)

	api := e.Group("/api")
	api.GET("/areas", s.handleAreas)
	api.GET("/data", s.handleAllData)

	api.GET("/devices", s.handleDevices)
	api.GET("/devices/:id", s.handleDevice)
	api.GET("/devices/:id/status", s.handleDeviceStatus)
	api.POST("/devices/:id/turn_on", s.command(s.home.TurnOn))
	api.POST("/devices/:id/turn_off", s.command(s.home.TurnOff))
	api.POST("/devices/:id/lock", s.command(s.home.Lock))
	api.POST("/devices/:id/unlock", s.command(s.home.Unlock))
	api.POST("/devices/:id/brightness", s.handleBrightness)
	api.POST("/devices/:id/temperature", s.handleTemperature)
	api.POST("/devices/:id/speed", s.handleSpeed)
	api.PATCH("/devices/:id/state", s.handleUpdateState)

	api.GET("/sensors", s.handleSensors)
	api.GET("/sensors/:id", s.handleSensor)
	api.GET("/sensors/:id/status", s.handleSensorStatus)

	api.GET("/hue/lights", s.handleHueLights)
	api.GET("/hue/lights/:id", s.handleHueLight)
	api.PUT("/hue/lights/:id/state", s.handleHueSetState)

	api.GET("/hub/status", s.handleHubStatus)
	api.GET("/hub/config", s.handleHubConfig)
	api.GET("/hub/services", s.handleHubServices)
	api.GET("/hub/entities", s.handleHubEntities)

	return e
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "backend": s.home.Backend()})
}

func (s *Server) handleAreas(c echo.Context) error {
	areas, err := s.home.ListAreas(c.Request().Context())
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, areas)
}

func (s *Server) handleAllData(c echo.Context) error {
	data, err := s.home.GetAllData(c.Request().Context())
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

func (s *Server) handleDevices(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		devices []*model.Device
		err     error
	)
	if area := c.QueryParam("area"); area != "" {
		devices, err = s.home.ListDevicesByArea(ctx, area)
	} else {
		devices, err = s.home.ListDevices(ctx)
	}
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, devices)
}

func (s *Server) handleDevice(c echo.Context) error {
	return writeResult(c, s.home.GetDevice(c.Request().Context(), c.Param("id")))
}

func (s *Server) handleDeviceStatus(c echo.Context) error {
	return writeResult(c, s.home.GetDeviceStatus(c.Request().Context(), c.Param("id")))
}

func (s *Server) handleSensors(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		sensors []*model.Sensor
		err     error
	)
	if area := c.QueryParam("area"); area != "" {
		sensors, err = s.home.ListSensorsByArea(ctx, area)
	} else {
		sensors, err = s.home.ListSensors(ctx)
	}
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, sensors)
}

func (s *Server) handleSensor(c echo.Context) error {
	return writeResult(c, s.home.GetSensor(c.Request().Context(), c.Param("id")))
}

func (s *Server) handleSensorStatus(c echo.Context) error {
	return writeResult(c, s.home.GetSensorStatus(c.Request().Context(), c.Param("id")))
}

type mutator func(ctx context.Context, id string) model.Result[*model.Device]

func (s *Server) command(fn mutator) echo.HandlerFunc {
	return func(c echo.Context) error {
		return writeResult(c, fn(c.Request().Context(), c.Param("id")))
	}
}

type valueRequest struct {
	Value *float64 `json:"value"`
}

func bindValue(c echo.Context) (float64, error) {
	var req valueRequest
	if err := c.Bind(&req); err != nil {
		return 0, err
	}
	if req.Value == nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, `missing "value"`)
	}
	return *req.Value, nil
}

// percent clamps before converting so out-of-range floats never overflow int.
func percent(v float64) int {
	return int(math.Round(math.Max(model.MinPercent, math.Min(model.MaxPercent, v))))
}

func (s *Server) handleBrightness(c echo.Context) error {
	v, err := bindValue(c)
	if err != nil {
		return err
	}
	return writeResult(c, s.home.SetBrightness(c.Request().Context(), c.Param("id"), percent(v)))
}

func (s *Server) handleTemperature(c echo.Context) error {
	v, err := bindValue(c)
	if err != nil {
		return err
	}
	return writeResult(c, s.home.SetTemperature(c.Request().Context(), c.Param("id"), v))
}

func (s *Server) handleSpeed(c echo.Context) error {
	v, err := bindValue(c)
	if err != nil {
		return err
	}
	return writeResult(c, s.home.SetFanSpeed(c.Request().Context(), c.Param("id"), percent(v)))
}

func (s *Server) handleUpdateState(c echo.Context) error {
	var patch model.DeviceState
	if err := c.Bind(&patch); err != nil {
		return err
	}
	return writeResult(c, s.home.UpdateState(c.Request().Context(), c.Param("id"), patch))
}

func (s *Server) handleHueLights(c echo.Context) error {
	devices, err := s.home.ListDevices(c.Request().Context())
	if err != nil {
		return s.backendError(c, err)
	}
	lights := make(map[string]*huego.Light)
	for _, d := range devices {
		if l := translator.HueLight(d); l != nil {
			lights[d.ID] = l
		}
	}
	return c.JSON(http.StatusOK, lights)
}

func (s *Server) handleHueLight(c echo.Context) error {
	res := s.home.GetDevice(c.Request().Context(), c.Param("id"))
	if !res.OK() {
		return writeResult(c, res)
	}
	l := translator.HueLight(res.Value)
	if l == nil {
		return writeResult(c, model.TypeMismatch[*huego.Light]())
	}
	return c.JSON(http.StatusOK, l)
}

type hueStateRequest struct {
	On  *bool  `json:"on"`
	Bri *uint8 `json:"bri"`
}

// handleHueSetState accepts a Hue light state body and answers with the Hue
// success list, one entry per applied attribute.
func (s *Server) handleHueSetState(c echo.Context) error {
	var req hueStateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := c.Param("id")

	var success []map[string]interface{}
	ack := func(attr string, v interface{}) {
		success = append(success, map[string]interface{}{
			"success": map[string]interface{}{fmt.Sprintf("/lights/%s/state/%s", id, attr): v},
		})
	}

	dev := s.home.GetDevice(ctx, id)
	if !dev.OK() {
		return writeResult(c, dev)
	}
	if dev.Value.Type != model.DeviceTypeLight {
		return writeResult(c, model.TypeMismatch[*model.Device]())
	}

	if req.On != nil {
		var res model.Result[*model.Device]
		if *req.On {
			res = s.home.TurnOn(ctx, id)
		} else {
			res = s.home.TurnOff(ctx, id)
		}
		if !res.OK() {
			return writeResult(c, res)
		}
		ack("on", *req.On)
	}
	if req.Bri != nil {
		res := s.home.SetBrightness(ctx, id, translator.PercentFromHue(*req.Bri))
		if !res.OK() {
			return writeResult(c, res)
		}
		ack("bri", *req.Bri)
	}
	if success == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no supported attribute in body")
	}
	return c.JSON(http.StatusOK, success)
}

func (s *Server) hubReady() bool {
	return s.hub != nil && s.hub.IsEnabled()
}

func (s *Server) handleHubStatus(c echo.Context) error {
	if !s.hubReady() {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"connected": false, "configured": false})
	}
	ok, err := s.hub.TestConnection(c.Request().Context())
	body := map[string]interface{}{"connected": ok, "configured": true}
	if err != nil {
		body["error"] = err.Error()
		return c.JSON(http.StatusBadGateway, body)
	}
	return c.JSON(http.StatusOK, body)
}

func (s *Server) handleHubConfig(c echo.Context) error {
	if !s.hubReady() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "home assistant not configured")
	}
	cfg, err := s.hub.GetConfig(c.Request().Context())
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleHubServices(c echo.Context) error {
	if !s.hubReady() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "home assistant not configured")
	}
	services, err := s.hub.GetServices(c.Request().Context())
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, services)
}

func (s *Server) handleHubEntities(c echo.Context) error {
	if !s.hubReady() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "home assistant not configured")
	}
	ctx := c.Request().Context()
	var (
		entities []ports.Entity
		err      error
	)
	if domain := c.QueryParam("domain"); domain != "" {
		entities, err = s.hub.GetEntitiesByDomain(ctx, domain)
	} else {
		entities, err = s.hub.GetAllStates(ctx)
	}
	if err != nil {
		return s.backendError(c, err)
	}
	return c.JSON(http.StatusOK, entities)
}

func (s *Server) backendError(c echo.Context, err error) error {
	s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
}

// writeResult maps an outcome onto a status code: NotFound 404,
// TypeMismatch 409, BackendError 502.
func writeResult[T any](c echo.Context, r model.Result[T]) error {
	switch r.Outcome {
	case model.OutcomeOK:
		return c.JSON(http.StatusOK, r.Value)
	case model.OutcomeNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found", "id": c.Param("id")})
	case model.OutcomeTypeMismatch:
		return c.JSON(http.StatusConflict, map[string]string{"error": "operation not supported by this device", "id": c.Param("id")})
	default:
		msg := "backend error"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": msg})
	}
}
