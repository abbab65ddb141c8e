package inventory

import (
	"strings"

	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	StockCode string `json:"stock_code"`
	BrandID   *uint  `json:"brand_id"`
	BrandName string `json:"brand_name"`
}

type CreateProductRequest struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	StockCode string `json:"stock_code"` // Opsiyonel
	BrandID   *uint  `json:"brand_id"`   // Opsiyonel
}

type UpdateProductRequest struct {
	Name      *string `json:"name"`
	Unit      *string `json:"unit"`
	StockCode *string `json:"stock_code"`
	BrandID   *uint   `json:"brand_id"`
}

func productResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		StockCode: p.StockCode,
		BrandID:   p.BrandID,
	}
	if p.Brand != nil {
		resp.BrandName = p.Brand.Name
	}
	return resp
}

// GET /api/products?brand_id= (tüm authenticated kullanıcılar görebilir)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Brand")

		if s := c.Query("brand_id"); s != "" {
			dbq = dbq.Where("brand_id = ?", s)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products (yönetici)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Unit = strings.TrimSpace(body.Unit)
		body.StockCode = strings.TrimSpace(body.StockCode)

		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve unit zorunlu")
		}

		// Stok kodu unique kontrolü (boş değilse)
		if body.StockCode != "" {
			var existingProduct models.Product
			if err := database.DB.Where("stock_code = ?", body.StockCode).First(&existingProduct).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Bu stok kodu zaten kullanılıyor")
			}
		}

		if body.BrandID != nil {
			var brand models.Brand
			if err := database.DB.First(&brand, "id = ?", *body.BrandID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Marka bulunamadı")
			}
		}

		p := models.Product{
			Name:      body.Name,
			Unit:      body.Unit,
			StockCode: body.StockCode,
			BrandID:   body.BrandID,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		database.DB.Preload("Brand").First(&p, p.ID)
		return c.Status(fiber.StatusCreated).JSON(productResponse(p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			p.Name = name
		}
		if body.Unit != nil {
			unit := strings.TrimSpace(*body.Unit)
			if unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Unit boş olamaz")
			}
			p.Unit = unit
		}
		if body.StockCode != nil {
			p.StockCode = strings.TrimSpace(*body.StockCode)
		}
		if body.BrandID != nil {
			var brand models.Brand
			if err := database.DB.First(&brand, "id = ?", *body.BrandID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Marka bulunamadı")
			}
			p.BrandID = body.BrandID
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		database.DB.Preload("Brand").First(&p, p.ID)
		return c.JSON(productResponse(p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		// Sayım kaydı olan ürün silinmez; geçmiş raporlar bozulur
		var count int64
		database.DB.Model(&models.StockSnapshot{}).Where("product_id = ?", p.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu ürüne ait stok sayımları var, önce onları sil")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Ürün silindi",
		})
	}
}
