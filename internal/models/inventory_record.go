package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sayım durumu etiketleri (istemci tarafında varyans işaretinden türetilir,
// export çıktısında da aynı etiketler kullanılır)
const (
	StatusMatch      = "Match"
	StatusUnderCount = "Under Count"
	StatusOverCount  = "Over Count"
)

// InventoryRecord: Bir sayım oturumundaki tek ürünün kaydı.
// ExpectedQty Excel yüklemesiyle bir kez yazılır, ScannedQty her okutmada
// toplamsal olarak güncellenir. Varyans ve tutarlar her okumada yeniden hesaplanır.
type InventoryRecord struct {
	ID           uint            `gorm:"primaryKey"`
	ItemID       string          `gorm:"size:100;not null;uniqueIndex"` // trim + büyük harf normalize edilmiş
	ProductName  string          `gorm:"size:255"`
	ExpectedQty  float64         `gorm:"not null;default:0"`
	ScannedQty   float64         `gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(20,6);default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(20,6);default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Variance: okutulan - beklenen. 0 eşleşme, negatif eksik sayım, pozitif fazla sayım.
func (r *InventoryRecord) Variance() float64 {
	return r.ScannedQty - r.ExpectedQty
}

// UnitValue: Tutar hesabında kullanılacak birim değer.
// Birim maliyet girilmişse o, yoksa satış fiyatı kullanılır.
func (r *InventoryRecord) UnitValue() decimal.Decimal {
	if !r.UnitCost.IsZero() {
		return r.UnitCost
	}
	return r.SellingPrice
}

// TotalValue: okutulan miktar x birim değer.
func (r *InventoryRecord) TotalValue() decimal.Decimal {
	return decimal.NewFromFloat(r.ScannedQty).Mul(r.UnitValue())
}

func (r *InventoryRecord) Status() string {
	return StatusForVariance(r.Variance())
}

// StatusForVariance: varyans işaretinden durum etiketi.
func StatusForVariance(variance float64) string {
	if variance == 0 {
		return StatusMatch
	}
	if variance < 0 {
		return StatusUnderCount
	}
	return StatusOverCount
}

// InventoryItemResponse: /get-scanned-summary yanıtındaki satır formatı.
type InventoryItemResponse struct {
	ItemID      string  `json:"item_id"`
	ProductName string  `json:"product_name"`
	ItemPrice   float64 `json:"item_price"`
	ExpectedQty float64 `json:"expected_qty"`
	ScannedQty  float64 `json:"scanned_qty"`
	Variance    float64 `json:"variance"`
	TotalPrice  float64 `json:"total_price"`
}

func (r *InventoryRecord) ToResponse() InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:      r.ItemID,
		ProductName: r.ProductName,
		ItemPrice:   r.UnitValue().InexactFloat64(),
		ExpectedQty: r.ExpectedQty,
		ScannedQty:  r.ScannedQty,
		Variance:    r.Variance(),
		TotalPrice:  r.TotalValue().InexactFloat64(),
	}
}
