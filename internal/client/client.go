// Package client: stok sayım servisinin ince HTTP istemcisi.
// Kalıcı durum tutmaz; her değiştiren çağrıdan sonra özet yeniden çekilir,
// istemcide tutulan kopyaya bir sonraki round trip'ten sonra güvenilmez.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sayim-backend/internal/models"
	"sayim-backend/internal/sayim"
)

var (
	ErrInvalidFileType = errors.New("Sadece .xlsx veya .xls dosyaları yüklenebilir")
	ErrFileTooLarge    = errors.New("Dosya boyutu 10MB'dan küçük olmalıdır")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New: verilen servis adresi için istemci oluşturur.
// Timeout yoktur; her okutma zaten operatörün onayını bekler, aynı anda tek
// istek uçuştadır ve başarısızlık sadece hata olarak yüzeye çıkar.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type UploadResult struct {
	Message     string `json:"message"`
	ItemsLoaded int    `json:"items_loaded"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type summaryResponse struct {
	AllScannedData []models.InventoryItemResponse `json:"all_scanned_data"`
}

// CheckStatus: servis ayakta mı? Başarısızlık bağlantı-yok durumudur;
// istemci okutma ve yükleme akışlarını kapatır.
func (c *Client) CheckStatus() (string, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("servise ulaşılamadı: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("servis yanıt vermiyor (HTTP %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("servis yanıtı okunamadı: %w", err)
	}
	return string(body), nil
}

// UploadExcel: Excel dosyasını servise yükler. Uzantı ve boyut kontrolü
// ağa çıkmadan önce yapılır.
func (c *Client) UploadExcel(path string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, ErrInvalidFileType
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dosya okunamadı: %w", err)
	}
	if info.Size() > sayim.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/upload-excel", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("dosya yüklenemedi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp, "Dosya yüklenemedi")
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("yükleme yanıtı çözümlenemedi: %w", err)
	}
	return &result, nil
}

// ScanItem: tek okutma gönderir. Doğrulama ağa çıkmadan önce yapılır (boşa
// round trip harcanmaz); geçerse normalize edilmiş kod ile servise iletilir.
// Yeni okutulan miktarı istemci asla kendisi hesaplamaz, her zaman ardından
// özet yeniden çekilir.
func (c *Client) ScanItem(itemID string, quantity float64) (string, error) {
	if err := sayim.ValidateScan(itemID, quantity); err != nil {
		return "", err
	}

	payload, err := json.Marshal(sayim.ScanItemRequest{
		ItemID:   sayim.NormalizeItemID(itemID),
		Quantity: quantity,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/scan-item", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("okutma gönderilemedi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp, "Okutma kaydedilemedi")
	}

	var result messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("okutma yanıtı çözümlenemedi: %w", err)
	}
	return result.Message, nil
}

// GetScannedSummary: tam kayıt listesini çeker. Servis kayıtları ekleniş
// sırasıyla döndürür, istemci yeniden sıralamaz.
func (c *Client) GetScannedSummary() ([]models.InventoryItemResponse, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/get-scanned-summary")
	if err != nil {
		return nil, fmt.Errorf("özet alınamadı: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp, "Sayım özeti alınamadı")
	}

	var result summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("özet yanıtı çözümlenemedi: %w", err)
	}
	return result.AllScannedData, nil
}

// DeleteAll: bütün sayım verisini sildirir. Geri alınamaz; onay çağırandan
// alınmış olmalıdır. Başarıdan sonra elde tutulan tüm kayıtlar bayattır,
// görünüm tamamen yeniden yüklenmelidir.
func (c *Client) DeleteAll() (string, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/delete-uploaded", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("silme isteği gönderilemedi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp, "Sayım verisi silinemedi")
	}

	var result messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("silme yanıtı çözümlenemedi: %w", err)
	}
	return result.Message, nil
}

// DownloadExcel: sayım raporunu indirir ve verilen yola yazar.
func (c *Client) DownloadExcel(destPath string) error {
	resp, err := c.httpClient.Get(c.baseURL + "/download-excel")
	if err != nil {
		return fmt.Errorf("rapor indirilemedi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp, "Rapor indirilemedi")
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("dosya oluşturulamadı: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("dosya yazılamadı: %w", err)
	}
	return nil
}

// decodeAPIError: servisin {"error": "..."} gövdesini çözer, çözülemezse
// genel mesaja düşer. Otomatik retry yapılmaz, hata olduğu gibi yüzeye çıkar.
func decodeAPIError(resp *http.Response, fallback string) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return errors.New(apiErr.Error)
	}
	return fmt.Errorf("%s (HTTP %d)", fallback, resp.StatusCode)
}
