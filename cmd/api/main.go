package main

import (
	"log"
	"time"

	"github.com/anjiri1684/edu_cooperative/cache"
	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/jobs"
	"github.com/anjiri1684/edu_cooperative/notifications"
	"github.com/anjiri1684/edu_cooperative/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	logs := config.SetupLogging()
	defer logs.Close()

	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()
	cache.ConnectRedis()

	if config.Bool("ENABLE_JOBS") {
		c := cron.New()
		if err := jobs.Schedule(c); err != nil {
			log.Fatalf("🔥 Failed to schedule jobs: %v", err)
		}
		go c.Start()
		defer c.Stop()
	} else {
		log.Println("⚠️ ENABLE_JOBS is false, scheduled jobs are disabled.")
	}

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Edu Cooperative",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  60 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   config.Config("TIME_ZONE"),
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Edu Cooperative API",
		})
	})

	routes.Setup(app)

	port := config.Config("PORT")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
