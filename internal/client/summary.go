package client

import (
	"strings"

	"sayim-backend/internal/models"
)

// Arama önerilerinde gösterilecek en fazla sonuç sayısı.
const maxSuggestions = 10

// FilterScanned: özet tablosunda sadece okutulmuş kayıtlar gösterilir.
// Negatif toplamlar da okutma geçmişi demektir, sıfır olmayan her kayıt dahildir.
// Servisin döndürdüğü sıra korunur.
func FilterScanned(items []models.InventoryItemResponse) []models.InventoryItemResponse {
	filtered := make([]models.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		if item.ScannedQty != 0 {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SearchItems: ürün adı veya kodunda geçen kelimeye göre öneri listesi üretir.
// Büyük/küçük harf duyarsızdır, en fazla maxSuggestions sonuç döner.
func SearchItems(items []models.InventoryItemResponse, query string) []models.InventoryItemResponse {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := make([]models.InventoryItemResponse, 0, maxSuggestions)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ProductName), q) ||
			strings.Contains(strings.ToLower(item.ItemID), q) {
			matches = append(matches, item)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}
