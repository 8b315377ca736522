package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/pecas-api/pkg/logger"
)

// LocalRequestID clave que usa requestid.New para guardar el id de la petición.
const LocalRequestID = "requestid"

// RequestLogger registra método, ruta, status y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		rid, _ := c.Locals(LocalRequestID).(string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

// RateLimit limita peticiones por IP y ruta con ulule/limiter.
// rate usa el formato "<n>-<S|M|H|D>" (p.ej. "20-M").
// Si el store falla la petición pasa: el límite no debe tumbar el login.
func RateLimit(store limiter.Store, rate string, log *logger.Logger) (fiber.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	lim := limiter.New(store, r)
	return func(c *fiber.Ctx) error {
		ctx, err := lim.Get(c.UserContext(), c.IP()+":"+c.Path())
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("rate limiter no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			return errorBody(c, fiber.StatusTooManyRequests, CodeRateLimited, "demasiados intentos, espere e intente de nuevo")
		}
		return c.Next()
	}, nil
}
