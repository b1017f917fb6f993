package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		apiV1.GET("/cluster", h.echoHandler(h.GetCluster))
		apiV1.GET("/cluster/drift", h.echoHandler(h.GetDrift))
		apiV1.POST("/cluster/shutdown", h.echoHandler(h.ShutdownCluster), echo.WrapMiddleware(h.GetAuthMiddleware()))

		apiV1.GET("/nodes", h.echoHandler(h.ListNodes))
		apiV1.DELETE("/nodes/:addr", h.echoHandlerWithParams(h.RemoveNode), echo.WrapMiddleware(h.GetAuthMiddleware()))

		apiV1.GET("/services", h.echoHandler(h.ListServices))
		apiV1.GET("/services/:id", h.echoHandlerWithParams(h.GetService))

		apiV1.GET("/events", h.echoHandler(h.ListEvents))
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}

// echoHandlerWithParams wraps a handler function and injects path parameters into request context
func (h *Handler) echoHandlerWithParams(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(name), c.Param(name)))
		}
		handlerFunc(c.Response().Writer, r)
		return nil
	}
}

type pathParamKey string

// GetPathParam retrieves a path parameter from request context
func (h *Handler) GetPathParam(r *http.Request, name string) string {
	if val, ok := r.Context().Value(pathParamKey(name)).(string); ok {
		return val
	}
	return ""
}
