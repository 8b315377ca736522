package http

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	SwaggerJSON []byte // vacío = sin /docs
}

// NewApp arma la aplicación Fiber con middlewares, /health, /docs y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())
	app.Use(RequestLogger(deps.Log))

	// Swagger UI: http://localhost:<port>/docs
	if len(cfg.SwaggerJSON) > 0 {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "swagger.json",
			FileContent: cfg.SwaggerJSON,
			Path:        "docs",
			Title:       cfg.Name,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	if err := Router(app, deps); err != nil {
		return nil, err
	}
	return app, nil
}

// errorHandler pone en el sobre estándar los errores que no pasan por los handlers (404 de ruta, panics).
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	switch code {
	case fiber.StatusNotFound:
		return errorBody(c, code, CodeNotFound, "ruta no encontrada")
	case fiber.StatusInternalServerError:
		return errorBody(c, code, CodeInternal, "error interno del servidor")
	default:
		return errorBody(c, code, CodeValidation, err.Error())
	}
}
