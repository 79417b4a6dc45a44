package sayim

import (
	"fmt"
	"time"

	"sayim-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// GET /download-excel
// Sayım özetini Excel dosyası olarak indirir.
func DownloadExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := FetchSummary()
		if err != nil {
			config.GetLogger().WithField("error", err.Error()).Error("export için kayıtlar okunamadı")
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım verisi okunamadı")
		}

		if len(records) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "İndirilecek sayım verisi yok")
		}

		f, err := BuildExportFile(records)
		if err != nil {
			config.GetLogger().WithField("error", err.Error()).Error("export dosyası oluşturulamadı")
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", ExportFileName(time.Now())))
		return c.Send(buf.Bytes())
	}
}
