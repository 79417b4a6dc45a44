package sayim

import (
	"fmt"

	"sayim-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type ScanItemRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"` // işaretli: negatif okutma düzeltme demektir
}

// POST /scan-item
// Tek bir okutmayı doğrular ve kayda toplamsal olarak işler. İstemci de aynı
// doğrulamayı yapar ama servise güvensiz girişler de gelebilir, kontrol burada
// tekrarlanır.
func ScanItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ScanItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := ValidateScan(body.ItemID, body.Quantity); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		itemID := NormalizeItemID(body.ItemID)
		if err := ApplyScan(itemID, body.Quantity); err != nil {
			config.GetLogger().WithField("item_id", itemID).WithField("error", err.Error()).Error("okutma kaydedilemedi")
			return fiber.NewError(fiber.StatusInternalServerError, "Okutma kaydedilemedi")
		}

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("%s için %+g miktar işlendi", itemID, body.Quantity),
		})
	}
}
