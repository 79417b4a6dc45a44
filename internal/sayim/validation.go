package sayim

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxScanQuantity: tek okutmada kabul edilen en büyük mutlak miktar.
// Üzerindeki değerler neredeyse her zaman veri giriş hatasıdır.
const MaxScanQuantity = 10000

var (
	ErrEmptyItemID        = errors.New("Ürün kodu boş olamaz")
	ErrItemIDTooShort     = errors.New("Ürün kodu en az 2 karakter olmalıdır")
	ErrZeroQuantity       = errors.New("Miktar 0 olamaz")
	ErrQuantityNotANumber = errors.New("Miktar geçerli bir sayı olmalıdır")
	ErrQuantityOutOfRange = errors.New("Miktar -10000 ile 10000 arasında olmalıdır")
)

// ValidateScan: okutma isteğini ağa çıkmadan önce doğrular.
// Kontrol sırası sabittir, ilk başarısız kontrol kazanır:
// boş kod, kısa kod, sıfır miktar, sayı olmayan miktar, aralık dışı miktar.
// Sıfır miktar ayrı reddedilir çünkü sıfır okutma hemen her zaman giriş hatasıdır.
func ValidateScan(itemID string, quantity float64) error {
	trimmed := strings.TrimSpace(itemID)
	if trimmed == "" {
		return ErrEmptyItemID
	}
	// Uzunluk karakter sayısıdır, bayt değil: "Ç" tek karakterdir
	if utf8.RuneCountInString(trimmed) < 2 {
		return ErrItemIDTooShort
	}
	if quantity == 0 {
		return ErrZeroQuantity
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return ErrQuantityNotANumber
	}
	if math.Abs(quantity) > MaxScanQuantity {
		return ErrQuantityOutOfRange
	}
	return nil
}

// NormalizeItemID: ürün kodunu trim + büyük harfe çevirir.
// Kayıt anahtarı her zaman bu normalize edilmiş halidir.
func NormalizeItemID(itemID string) string {
	return strings.ToUpper(strings.TrimSpace(itemID))
}
