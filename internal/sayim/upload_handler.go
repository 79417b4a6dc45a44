package sayim

import (
	"fmt"
	"strings"

	"sayim-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize: yüklenebilecek en büyük Excel dosyası (10 MiB).
const MaxUploadSize = 10 * 1024 * 1024

// POST /upload-excel
// Excel dosyasını okur, beklenen miktar listesini çıkarır ve mevcut sayım
// verisinin yerine yükler.
func UploadExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: 'file' alanı gönderilmelidir")
		}

		name := strings.ToLower(fileHeader.Filename)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx veya .xls dosyaları yüklenebilir")
		}

		if fileHeader.Size > MaxUploadSize {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya boyutu 10MB'dan küçük olmalıdır")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		// Parse hataları (boş dosya, eksik kolon, geçerli satır yok, bozuk format)
		// kullanıcı hatasıdır, mesaj olduğu gibi iletilir
		items, err := ParseBaseline(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		count, err := ReplaceBaseline(items)
		if err != nil {
			config.GetLogger().WithField("error", err.Error()).Error("baseline yüklemesi başarısız")
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım listesi kaydedilemedi")
		}

		config.GetLogger().WithField("items_loaded", count).Info("sayım listesi yüklendi")

		return c.JSON(fiber.Map{
			"message":      fmt.Sprintf("%d ürün yüklendi", count),
			"items_loaded": count,
		})
	}
}
