package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// With the in-memory store and session backend there are no external
// dependencies, so both clients may be nil and the probe reports ready.
type HealthDependenciesHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: db,
		redis: rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if h.mongo != nil {
		if err := h.mongo.Client().Ping(ctx, nil); err != nil {
			deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["mongodb"] = dependencyStatus{Status: "ok"}
		}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// InfoHandler handles GET /info, static service metadata.
type InfoHandler struct {
	env string
	tr  *i18n.Translator
}

func NewInfoHandler(env string, tr *i18n.Translator) *InfoHandler {
	return &InfoHandler{env: env, tr: tr}
}

type infoResponse struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	Environment   string   `json:"environment"`
	Locales       []string `json:"locales"`
	DefaultLocale string   `json:"default_locale"`
	Docs          string   `json:"docs"`
}

const apiVersion = "1.0.0"

func (h *InfoHandler) Info(c echo.Context) error {
	locale := resolveLocale(c, h.tr)
	return c.JSON(http.StatusOK, infoResponse{
		Name:          h.tr.T(locale, "general.app_name", nil),
		Version:       apiVersion,
		Environment:   h.env,
		Locales:       h.tr.Supported(),
		DefaultLocale: h.tr.DefaultLocale(),
		Docs:          "/docs/index.html",
	})
}
