package sayim

import (
	"errors"
	"math"
	"testing"
)

func TestValidateScan(t *testing.T) {
	cases := []struct {
		name     string
		itemID   string
		quantity float64
		want     error
	}{
		{"gecerli", "A1", 2, nil},
		{"bos_kod", "", 5, ErrEmptyItemID},
		{"bosluk_kod", "   ", 5, ErrEmptyItemID},
		{"kisa_kod", "A", 5, ErrItemIDTooShort},
		{"kisa_kod_bosluklu", "  A  ", 5, ErrItemIDTooShort},
		{"kisa_kod_coklu_bayt", "Ç", 5, ErrItemIDTooShort}, // tek karakter, iki bayt
		{"iki_karakter_coklu_bayt", "ÇĞ", 5, nil},
		{"sifir_miktar", "A1", 0, ErrZeroQuantity},
		{"nan_miktar", "A1", math.NaN(), ErrQuantityNotANumber},
		{"sonsuz_miktar", "A1", math.Inf(1), ErrQuantityNotANumber},
		{"ust_sinir_gecerli", "A1", 10000, nil},
		{"ust_sinir_disi", "A1", 10001, ErrQuantityOutOfRange},
		{"alt_sinir_gecerli", "A1", -10000, nil},
		{"alt_sinir_disi", "A1", -10001, ErrQuantityOutOfRange},
		{"negatif_gecerli", "A1", -3, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateScan(tc.itemID, tc.quantity)
			if !errors.Is(err, tc.want) {
				t.Errorf("ValidateScan(%q, %v) = %v, beklenen %v", tc.itemID, tc.quantity, err, tc.want)
			}
		})
	}
}

// Kontrol sırası sabittir: birden fazla hata varken hep aynı hata döner.
func TestValidateScanPrecedence(t *testing.T) {
	// Boş kod + sıfır miktar: önce kod kontrolü
	if err := ValidateScan("", 0); !errors.Is(err, ErrEmptyItemID) {
		t.Errorf("boş kod önce yakalanmalıydı, gelen: %v", err)
	}
	// Kısa kod + aralık dışı miktar: önce kod kontrolü
	if err := ValidateScan("A", 99999); !errors.Is(err, ErrItemIDTooShort) {
		t.Errorf("kısa kod önce yakalanmalıydı, gelen: %v", err)
	}
	// Sıfır miktar NaN kontrolünden önce gelir
	if err := ValidateScan("A1", 0); !errors.Is(err, ErrZeroQuantity) {
		t.Errorf("sıfır miktar önce yakalanmalıydı, gelen: %v", err)
	}
	// NaN aralık kontrolünden önce gelir
	if err := ValidateScan("A1", math.NaN()); !errors.Is(err, ErrQuantityNotANumber) {
		t.Errorf("NaN önce yakalanmalıydı, gelen: %v", err)
	}
}

func TestNormalizeItemID(t *testing.T) {
	cases := map[string]string{
		"  a1  ":  "A1",
		"abc123":  "ABC123",
		"  X9":    "X9",
		"kalem-1": "KALEM-1",
	}
	for in, want := range cases {
		if got := NormalizeItemID(in); got != want {
			t.Errorf("NormalizeItemID(%q) = %q, beklenen %q", in, got, want)
		}
	}
}
