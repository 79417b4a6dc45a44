package sayim

import (
	"sayim-backend/internal/config"
	"sayim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /get-scanned-summary
// Tüm kayıtları ekleniş sırasıyla döndürür. Okutulmamış kayıtlar da listeye
// dahildir; özet tablosundaki filtreleme istemcinin işidir, arama önerileri
// için tam listeye ihtiyacı vardır.
func ScannedSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := FetchSummary()
		if err != nil {
			config.GetLogger().WithField("error", err.Error()).Error("özet okunamadı")
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım özeti okunamadı")
		}

		items := make([]models.InventoryItemResponse, 0, len(records))
		for i := range records {
			items = append(items, records[i].ToResponse())
		}

		return c.JSON(fiber.Map{
			"all_scanned_data": items,
		})
	}
}
