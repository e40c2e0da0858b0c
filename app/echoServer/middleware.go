// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HeaderActorID carries the caller's actor id (user or manager). The
// service layer does all authorization; this header is just transport.
const HeaderActorID = "X-Actor-ID"

func RegisterMiddlewares(e *echo.Echo, branch string) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(branch))

	e.Use(Actor())
}

func Slog(branch string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"branch", branch,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"actor", c.Request().Header.Get(HeaderActorID),
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

// Actor lifts the actor id header into the request context, where
// shared.Actor reads it back for the controllers.
func Actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("actor_id", c.Request().Header.Get(HeaderActorID))
			return next(c)
		}
	}
}
