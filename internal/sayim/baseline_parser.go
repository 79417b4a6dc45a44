package sayim

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyFile: başlık satırı + en az 1 veri satırı yoksa
	ErrEmptyFile = errors.New("Excel dosyası boş veya yetersiz veri içeriyor")
	// ErrMissingColumns: ürün kodu veya beklenen miktar kolonu bulunamadıysa
	ErrMissingColumns = errors.New("Gerekli kolonlar bulunamadı. Dosyada 'Item ID' ve 'Expected Quantity' kolonları olmalı")
	// ErrNoValidRows: filtreleme sonrası hiç geçerli satır kalmadıysa
	ErrNoValidRows = errors.New("Excel dosyasında geçerli veri satırı bulunamadı")
)

// Kolon eş anlamlıları: başlıkta geçen ilk eşleşme kazanır, liste sırası önceliklidir.
// Büyük/küçük harf duyarsız substring eşleşmesi yapılır.
var (
	itemIDSynonyms = []string{"item id", "itemid", "sku", "product code", "id"}
	qtySynonyms    = []string{"expected quantity", "expectedqty", "qty", "quantity", "expected"}

	// Opsiyonel kolonlar: bulunamazsa satır yine geçerlidir
	nameSynonyms  = []string{"product name", "productname", "name", "description"}
	costSynonyms  = []string{"unit cost", "cost"}
	priceSynonyms = []string{"selling price", "unit price", "price"}
)

// BaselineItem: Excel'den okunan tek satır. ItemID normalize edilmiş haldedir.
type BaselineItem struct {
	ItemID       string
	ProductName  string
	ExpectedQty  float64
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
}

// ParseBaseline: yüklenen Excel dosyasından beklenen miktar listesini çıkarır.
// İlk sheet'in ilk satırı başlık kabul edilir. Ürün kodu boş olan satırlar
// atlanır, sayıya çevrilemeyen miktar hücreleri 0 sayılır (satır iptal edilmez).
// Aynı ürün kodu birden fazla satırda geçerse son satır kazanır; satır sırası
// ilk görülme sırasına göre korunur. Saf dönüşümdür, yan etkisi yoktur.
func ParseBaseline(r io.Reader) ([]BaselineItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.New("Excel dosyası okunamadı. Geçerli bir .xlsx/.xls dosyası olduğundan emin olun")
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, errors.New("Sheet okunamadı: " + err.Error())
	}

	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	headers := rows[0]
	itemIDIdx := findColumnIndex(headers, itemIDSynonyms)
	qtyIdx := findColumnIndex(headers, qtySynonyms)
	if itemIDIdx == -1 || qtyIdx == -1 {
		return nil, ErrMissingColumns
	}

	nameIdx := findColumnIndex(headers, nameSynonyms)
	costIdx := findColumnIndex(headers, costSynonyms)
	priceIdx := findColumnIndex(headers, priceSynonyms)

	items := make([]BaselineItem, 0, len(rows)-1)
	seen := make(map[string]int) // itemID -> items içindeki konum (son satır kazanır)

	for _, row := range rows[1:] {
		rawID := cellAt(row, itemIDIdx)
		itemID := NormalizeItemID(rawID)
		if itemID == "" {
			continue
		}

		item := BaselineItem{
			ItemID:       itemID,
			ProductName:  strings.TrimSpace(cellAt(row, nameIdx)),
			ExpectedQty:  coerceQuantity(cellAt(row, qtyIdx)),
			UnitCost:     coercePrice(cellAt(row, costIdx)),
			SellingPrice: coercePrice(cellAt(row, priceIdx)),
		}

		if pos, ok := seen[itemID]; ok {
			items[pos] = item
			continue
		}
		seen[itemID] = len(items)
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, ErrNoValidRows
	}

	return items, nil
}

// findColumnIndex: eş anlamlı listesindeki her isim için başlıklarda substring
// arar, ilk eşleşen kolonun indeksini döndürür. Bulamazsa -1.
func findColumnIndex(headers []string, synonyms []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, name := range synonyms {
		for i, h := range normalized {
			if strings.Contains(h, name) {
				return i
			}
		}
	}
	return -1
}

// cellAt: satırda indeks sınır dışındaysa boş string döndürür
// (excelize satır sonundaki boş hücreleri kırpar).
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// normalizeDecimalSeparators: hücrede nokta varsa virgüller binlik ayracıdır
// ve atılır ("1,234.5" -> "1234.5"); yoksa virgül Türkçe ondalık ayracı
// sayılır ("2,5" -> "2.5").
func normalizeDecimalSeparators(s string) string {
	if strings.Contains(s, ".") {
		return strings.ReplaceAll(s, ",", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}

// coerceQuantity: miktar hücresini sayıya çevirir, çevrilemiyorsa 0.
func coerceQuantity(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(normalizeDecimalSeparators(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// coercePrice: fiyat hücresini decimal'e çevirir, çevrilemiyorsa veya
// negatifse 0 (fiyatlar negatif olamaz).
func coercePrice(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(normalizeDecimalSeparators(s))
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}
