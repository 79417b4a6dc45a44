package sayim

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// newTestApp: cmd/server ile aynı hata işleyici ve route'larla fiber app kurar.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: MaxUploadSize + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Stok sayım servisi çalışıyor")
	})
	app.Post("/upload-excel", UploadExcelHandler())
	app.Post("/scan-item", ScanItemHandler())
	app.Delete("/delete-uploaded", DeleteUploadedHandler())
	app.Get("/get-scanned-summary", ScannedSummaryHandler())
	app.Get("/download-excel", DownloadExcelHandler())
	return app
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("yanıt gövdesi çözümlenemedi: %v", err)
	}
}

// multipartBody: "file" alanıyla multipart gövde hazırlar.
func multipartBody(t *testing.T, filename string, content io.Reader) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		t.Fatalf("io.Copy: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("writer.Close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestStatusRoute(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("durum kontrolü 200 dönmeli: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		t.Error("durum yanıtı boş olmamalı")
	}
}

// Doğrulama hataları veritabanına inmeden {"error": ...} zarfıyla döner.
func TestScanItemHandlerErrorEnvelope(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"bozuk_govde", `{"item_id": }`, "Geçersiz istek gövdesi"},
		{"bos_kod", `{"item_id": "", "quantity": 5}`, ErrEmptyItemID.Error()},
		{"sifir_miktar", `{"item_id": "A1", "quantity": 0}`, ErrZeroQuantity.Error()},
		{"aralik_disi", `{"item_id": "A1", "quantity": 10001}`, ErrQuantityOutOfRange.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/scan-item", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("400 bekleniyordu, %d geldi", resp.StatusCode)
			}

			var body struct {
				Error string `json:"error"`
			}
			decodeBody(t, resp, &body)
			if body.Error != tc.wantMsg {
				t.Errorf("error alanı %q olmalıydı, %q geldi", tc.wantMsg, body.Error)
			}
		})
	}
}

func TestUploadHandlerRejectsWrongExtension(t *testing.T) {
	app := newTestApp()

	buf, contentType := multipartBody(t, "liste.txt", strings.NewReader("veri"))
	req := httptest.NewRequest(http.MethodPost, "/upload-excel", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("400 bekleniyordu, %d geldi", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	if body.Error == "" {
		t.Error("error alanı dolu olmalıydı")
	}
}

// Uçtan uca zarf kontrolü: yükle -> okut -> özet -> sil -> indir.
// Gerçek Postgres ister (INTEGRATION_TESTS=1).
func TestHandlerWireContract(t *testing.T) {
	setupIntegrationDB(t)
	app := newTestApp()

	// Yükleme: {message, items_loaded}
	wb := workbookBytes(t, [][]interface{}{
		{"Item ID", "Expected Quantity"},
		{"A1", 5},
		{"B2", 3},
	})
	buf, contentType := multipartBody(t, "liste.xlsx", wb)
	req := httptest.NewRequest(http.MethodPost, "/upload-excel", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload 200 dönmeli: %d", resp.StatusCode)
	}
	var uploadBody struct {
		Message     string `json:"message"`
		ItemsLoaded int    `json:"items_loaded"`
	}
	decodeBody(t, resp, &uploadBody)
	if uploadBody.ItemsLoaded != 2 || uploadBody.Message == "" {
		t.Errorf("yükleme zarfı yanlış: %+v", uploadBody)
	}

	// Okutma: {message}
	req = httptest.NewRequest(http.MethodPost, "/scan-item", strings.NewReader(`{"item_id": "a1", "quantity": 2}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan 200 dönmeli: %d", resp.StatusCode)
	}
	var scanBody struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &scanBody)
	if scanBody.Message == "" {
		t.Error("okutma mesajı boş olmamalı")
	}

	// Özet: {all_scanned_data}, okutma hemen görünür (read-your-writes)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/get-scanned-summary", nil), -1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var summaryBody struct {
		AllScannedData []struct {
			ItemID     string  `json:"item_id"`
			ScannedQty float64 `json:"scanned_qty"`
			Variance   float64 `json:"variance"`
		} `json:"all_scanned_data"`
	}
	decodeBody(t, resp, &summaryBody)
	if len(summaryBody.AllScannedData) != 2 {
		t.Fatalf("özette 2 kayıt bekleniyordu: %+v", summaryBody)
	}
	a1 := summaryBody.AllScannedData[0]
	if a1.ItemID != "A1" || a1.ScannedQty != 2 || a1.Variance != -3 {
		t.Errorf("A1 satırı yanlış: %+v", a1)
	}

	// Silme: {message}
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/delete-uploaded", nil), -1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	var deleteBody struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &deleteBody)
	if deleteBody.Message == "" {
		t.Error("silme mesajı boş olmamalı")
	}

	// Veri yokken indirme: 404 + {"error"}
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/download-excel", nil), -1)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("boş veride 404 bekleniyordu: %d", resp.StatusCode)
	}
	var downloadErr struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &downloadErr)
	if downloadErr.Error == "" {
		t.Error("error alanı dolu olmalıydı")
	}
}
