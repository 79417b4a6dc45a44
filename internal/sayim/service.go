package sayim

import (
	"fmt"
	"time"

	"sayim-backend/internal/database"
	"sayim-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReplaceBaseline: mevcut sayım verisini siler ve yeni listeyi yükler.
// Yeni bir sayım oturumu temiz başlar; aynı dosyanın tekrar yüklenmesi bu
// yüzden idempotenttir. Yüklenen kayıt sayısını döndürür.
func ReplaceBaseline(items []BaselineItem) (int, error) {
	records := make([]models.InventoryRecord, 0, len(items))
	for _, item := range items {
		records = append(records, models.InventoryRecord{
			ItemID:       item.ItemID,
			ProductName:  item.ProductName,
			ExpectedQty:  item.ExpectedQty,
			ScannedQty:   0,
			UnitCost:     item.UnitCost,
			SellingPrice: item.SellingPrice,
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.InventoryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 500).Error
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// ApplyScan: okutulan miktarı kayda ekler. Ürün kodu daha önce görülmemişse
// beklenen miktarı 0 olan yeni kayıt açılır (saf fazla sayım). Ekleme tek
// SQL cümlesiyle yapılır; iki istemcinin aynı ürünü aynı anda okutması iki
// ayrı artış olarak işlenir, okuma-yazma yarışı oluşmaz.
func ApplyScan(itemID string, quantity float64) error {
	record := models.InventoryRecord{
		ItemID:     itemID,
		ScannedQty: quantity,
	}

	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"scanned_qty": gorm.Expr("inventory_records.scanned_qty + excluded.scanned_qty"),
			"updated_at":  time.Now(),
		}),
	}).Create(&record).Error
}

// FetchSummary: tüm kayıtları ekleniş sırasıyla döndürür.
// Filtreleme yapılmaz; istemci hem özet tabloyu hem arama önerilerini
// bu tek listeden türetir.
func FetchSummary() ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := database.DB.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAll: bütün sayım kayıtlarını siler, silinen kayıt sayısını döndürür.
// Geri alınamaz; onay istemciden alınır.
func DeleteAll() (int64, error) {
	result := database.DB.Where("1 = 1").Delete(&models.InventoryRecord{})
	return result.RowsAffected, result.Error
}

// BuildExportFile: sayım özetini Excel dosyası olarak hazırlar.
func BuildExportFile(records []models.InventoryRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Sheet1"
	headers := []string{"Item ID", "Product Name", "Expected Qty", "Scanned Qty", "Variance", "Status", "Unit Price", "Total Value"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.ItemID,
			r.ProductName,
			r.ExpectedQty,
			r.ScannedQty,
			r.Variance(),
			r.Status(),
			r.UnitValue().InexactFloat64(),
			r.TotalValue().InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportFileName: indirme için tarih damgalı dosya adı üretir.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("sayim-raporu-%s.xlsx", now.Format("2006-01-02"))
}
