package inventory

import (
	"fmt"
	"strings"

	"saha-backend/internal/audit"
	"saha-backend/internal/auth"
	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// normalizeTurkish: Türkçe karakterleri ASCII karşılıklarına çevirir.
// Örn: "ÇİKOLATALI GOFRET" -> "cikolatali gofret"
// Excel'den gelen ürün adlarını mevcut ürünlerle eşleştirirken kullanılır.
func normalizeTurkish(s string) string {
	replacements := map[rune]string{
		'ç': "c", 'Ç': "C",
		'ğ': "g", 'Ğ': "G",
		'ı': "i", 'İ': "I",
		'ö': "o", 'Ö': "O",
		'ş': "s", 'Ş': "S",
		'ü': "u", 'Ü': "U",
	}

	var result strings.Builder
	for _, r := range s {
		if replacement, ok := replacements[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(result.String()))
}

// POST /api/products/bulk-import (yönetici)
//
// Beklenen kolonlar: Stok Kodu | Ürün Adı | Birim | Marka (opsiyonel).
// Stok kodu eşleşirse ürün güncellenir, eşleşmezse ad üzerinden (Türkçe
// karakter normalizasyonu ile) aranır, o da yoksa yeni ürün açılır.
func BulkImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası (file) zorunlu")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		// İlk sheet'i al
		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}
		sheetName := sheetList[0]

		rows, err := excelFile.GetRows(sheetName)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// Mevcut ürünleri normalize ada göre indexle
		var existing []models.Product
		if err := database.DB.Find(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler okunamadı")
		}
		byStockCode := make(map[string]*models.Product)
		byNormName := make(map[string]*models.Product)
		for i := range existing {
			if existing[i].StockCode != "" {
				byStockCode[existing[i].StockCode] = &existing[i]
			}
			byNormName[normalizeTurkish(existing[i].Name)] = &existing[i]
		}

		created := 0
		updated := 0
		skipped := 0

		for idx, row := range rows {
			// İlk satır başlık mı kontrol et ("ÜRÜN", "PRODUCT", "STOK" içeriyorsa)
			if idx == 0 {
				joined := strings.ToUpper(strings.Join(row, " "))
				if strings.Contains(joined, "ÜRÜN") || strings.Contains(joined, "PRODUCT") || strings.Contains(joined, "STOK") {
					continue
				}
			}

			if len(row) < 2 {
				skipped++
				continue
			}

			stockCode := strings.TrimSpace(row[0])
			name := strings.TrimSpace(row[1])
			unit := "adet"
			if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
				unit = strings.TrimSpace(row[2])
			}
			if name == "" {
				skipped++
				continue
			}

			var brandID *uint
			if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
				brandName := strings.TrimSpace(row[3])
				var brand models.Brand
				if err := database.DB.Where("name = ?", brandName).First(&brand).Error; err != nil {
					brand = models.Brand{Name: brandName}
					if err := database.DB.Create(&brand).Error; err != nil {
						skipped++
						continue
					}
				}
				brandID = &brand.ID
			}

			// Önce stok koduyla, sonra normalize adla eşleştir
			var match *models.Product
			if stockCode != "" {
				match = byStockCode[stockCode]
			}
			if match == nil {
				match = byNormName[normalizeTurkish(name)]
			}

			if match != nil {
				match.Name = name
				match.Unit = unit
				if stockCode != "" {
					match.StockCode = stockCode
				}
				if brandID != nil {
					match.BrandID = brandID
				}
				if err := database.DB.Save(match).Error; err != nil {
					skipped++
					continue
				}
				updated++
				continue
			}

			p := models.Product{
				Name:      name,
				Unit:      unit,
				StockCode: stockCode,
				BrandID:   brandID,
			}
			if err := database.DB.Create(&p).Error; err != nil {
				skipped++
				continue
			}
			byNormName[normalizeTurkish(p.Name)] = &p
			if p.StockCode != "" {
				byStockCode[p.StockCode] = &p
			}
			created++
		}

		userID, err := auth.CurrentUserID(c)
		if err == nil {
			var user models.User
			if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
				_ = audit.WriteLog(audit.LogOptions{
					UserID:      userID,
					UserName:    user.Name,
					EntityType:  "product",
					EntityID:    0,
					Action:      models.AuditActionCreate,
					Description: fmt.Sprintf("Excel içe aktarım: %d yeni, %d güncellendi, %d atlandı (%s)", created, updated, skipped, fileHeader.Filename),
					Before:      nil,
					After:       nil,
				})
			}
		}

		return c.JSON(fiber.Map{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
