package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/uraiai/tidycal-go/internal/pkg/env"
	"github.com/uraiai/tidycal-go/internal/pkg/router"
	"github.com/uraiai/tidycal-go/internal/pkg/tools"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	app := fiber.New(fiber.Config{
		AppName: "tidycal-tools",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"service": "tidycal-tools",
			"status":  "ok",
		})
	})

	cfg := tools.Config{
		BaseURL: env.GetEnv("TIDYCAL_API_BASE_URL", ""),
	}
	registry, err := tools.NewRegistry(tools.DefaultTools(cfg)...)
	if err != nil {
		panic(err)
	}
	router.NewToolRouter(registry).InstallRouter(app)

	return app
}
