package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"sayim-backend/internal/client"
	"sayim-backend/internal/config"
	"sayim-backend/internal/models"
)

// Sayım terminali: Excel listesi yükle, ürünleri tek tek okut, özeti izle.
// Bütün kalıcı durum serviste tutulur; her değiştiren işlemden sonra özet
// yeniden çekilir.
func main() {
	cfg := config.Load()
	apiURL := flag.String("api", cfg.APIBaseURL, "Sayım servisinin adresi")
	flag.Parse()

	c := client.New(*apiURL)
	session := &scannerSession{client: c, out: os.Stdout}

	session.checkConnection()
	fmt.Println("Stok sayım terminali. Komutlar için 'yardim' yazın.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(session.prompt())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "cikis" {
			return
		}
		session.handle(line, scanner)
	}
}

type scannerSession struct {
	client    *client.Client
	out       *os.File
	connected bool
}

func (s *scannerSession) prompt() string {
	if !s.connected {
		return "[BAĞLANTI YOK] sayim> "
	}
	return "sayim> "
}

func (s *scannerSession) checkConnection() {
	if _, err := s.client.CheckStatus(); err != nil {
		s.connected = false
		fmt.Println("UYARI: Servise bağlanılamadı. Okutma ve yükleme kapalı:", err)
		return
	}
	s.connected = true
}

func (s *scannerSession) handle(line string, in *bufio.Scanner) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "yardim":
		s.printHelp()
	case "durum":
		s.checkConnection()
		if s.connected {
			fmt.Println("Servis ayakta.")
		}
	case "yukle":
		if len(args) != 1 {
			fmt.Println("Kullanım: yukle <dosya.xlsx>")
			return
		}
		s.upload(args[0])
	case "tara":
		if len(args) != 2 {
			fmt.Println("Kullanım: tara <ürün-kodu> <miktar>")
			return
		}
		s.scan(args[0], args[1])
	case "ozet":
		s.showSummary()
	case "ara":
		if len(args) == 0 {
			fmt.Println("Kullanım: ara <kelime>")
			return
		}
		s.search(strings.Join(args, " "))
	case "indir":
		dest := "sayim-raporu.xlsx"
		if len(args) == 1 {
			dest = args[0]
		}
		if err := s.client.DownloadExcel(dest); err != nil {
			fmt.Println("HATA:", err)
			return
		}
		fmt.Println("Rapor kaydedildi:", dest)
	case "sil":
		s.deleteAll(in)
	default:
		fmt.Printf("Bilinmeyen komut: %q ('yardim' yazın)\n", cmd)
	}
}

func (s *scannerSession) printHelp() {
	fmt.Println(`Komutlar:
  durum                 Servis bağlantısını kontrol et
  yukle <dosya.xlsx>    Beklenen miktar listesini yükle (önceki veriyi değiştirir)
  tara <kod> <miktar>   Okutma gönder (negatif miktar düzeltmedir)
  ozet                  Okutulmuş ürünlerin sayım özeti
  ara <kelime>          Ürün adı/koduna göre arama önerileri
  indir [dosya]         Sayım raporunu Excel olarak indir
  sil                   TÜM sayım verisini sil (onay ister)
  cikis                 Çıkış`)
}

func (s *scannerSession) upload(path string) {
	if !s.connected {
		fmt.Println("Servise bağlı değilsiniz, önce 'durum' ile kontrol edin.")
		return
	}
	result, err := s.client.UploadExcel(path)
	if err != nil {
		fmt.Println("HATA:", err)
		return
	}
	fmt.Printf("%s (%d ürün)\n", result.Message, result.ItemsLoaded)
	s.showSummary()
}

func (s *scannerSession) scan(itemID, qtyArg string) {
	if !s.connected {
		fmt.Println("Servise bağlı değilsiniz, önce 'durum' ile kontrol edin.")
		return
	}
	qty, err := strconv.ParseFloat(strings.ReplaceAll(qtyArg, ",", "."), 64)
	if err != nil {
		fmt.Println("HATA: Miktar geçerli bir sayı olmalıdır")
		return
	}
	msg, err := s.client.ScanItem(itemID, qty)
	if err != nil {
		fmt.Println("HATA:", err)
		return
	}
	fmt.Println(msg)
	// Okutmadan sonra yerel durum güncellenmez, özet servisten yeniden çekilir
	s.showSummary()
}

func (s *scannerSession) showSummary() {
	items, err := s.client.GetScannedSummary()
	if err != nil {
		fmt.Println("HATA:", err)
		return
	}

	scanned := client.FilterScanned(items)
	if len(scanned) == 0 {
		fmt.Println("Henüz okutulmuş ürün yok.")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KOD\tÜRÜN\tBEKLENEN\tOKUTULAN\tFARK\tDURUM\tTUTAR")
	for _, item := range scanned {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%+g\t%s\t%.2f\n",
			item.ItemID,
			item.ProductName,
			item.ExpectedQty,
			item.ScannedQty,
			item.Variance,
			models.StatusForVariance(item.Variance),
			item.TotalPrice,
		)
	}
	w.Flush()
}

func (s *scannerSession) search(query string) {
	items, err := s.client.GetScannedSummary()
	if err != nil {
		fmt.Println("HATA:", err)
		return
	}
	matches := client.SearchItems(items, query)
	if len(matches) == 0 {
		fmt.Println("Eşleşen ürün bulunamadı.")
		return
	}
	for _, m := range matches {
		fmt.Printf("  %s\t%s\n", m.ItemID, m.ProductName)
	}
}

// deleteAll: geri alınamaz, iki adımlı onay ister.
func (s *scannerSession) deleteAll(in *bufio.Scanner) {
	fmt.Print("TÜM sayım verisi silinecek ve geri alınamaz. Onay için 'EVET' yazın: ")
	if !in.Scan() {
		return
	}
	if strings.TrimSpace(in.Text()) != "EVET" {
		fmt.Println("Silme iptal edildi.")
		return
	}

	msg, err := s.client.DeleteAll()
	if err != nil {
		fmt.Println("HATA:", err)
		return
	}
	fmt.Println(msg)
	// Eldeki her kayıt artık bayat, görünüm tamamen yeniden yüklenir
	s.showSummary()
}
