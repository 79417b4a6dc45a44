package main

import (
	"log"
	"strings"

	"sayim-backend/internal/config"
	"sayim-backend/internal/database"
	"sayim-backend/internal/sayim"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: sayim.MaxUploadSize + 1024*1024, // multipart overhead payı
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Durum kontrolü: istemci bağlantı banner'ı için kullanır
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Stok sayım servisi çalışıyor")
	})

	app.Post("/upload-excel", sayim.UploadExcelHandler())
	app.Post("/scan-item", sayim.ScanItemHandler())
	app.Delete("/delete-uploaded", sayim.DeleteUploadedHandler())
	app.Get("/get-scanned-summary", sayim.ScannedSummaryHandler())
	app.Get("/download-excel", sayim.DownloadExcelHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
