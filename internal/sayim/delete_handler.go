package sayim

import (
	"fmt"

	"sayim-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// DELETE /delete-uploaded
// Bütün sayım kayıtlarını siler. Onay adımı istemcidedir; bu endpoint'e
// ulaşan istek kesinleşmiş sayılır.
func DeleteUploadedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := DeleteAll()
		if err != nil {
			config.GetLogger().WithField("error", err.Error()).Error("kayıtlar silinemedi")
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım verisi silinemedi")
		}

		config.GetLogger().WithField("deleted", count).Info("sayım verisi silindi")

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("%d kayıt silindi", count),
		})
	}
}
