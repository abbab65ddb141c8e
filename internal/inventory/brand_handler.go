package inventory

import (
	"strings"

	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BrandResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

type CreateBrandRequest struct {
	Name string `json:"name"`
}

// GET /api/brands
func ListBrandsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var brands []models.Brand
		if err := database.DB.Order("name asc").Find(&brands).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Markalar listelenemedi")
		}

		res := make([]BrandResponse, 0, len(brands))
		for _, b := range brands {
			var count int64
			database.DB.Model(&models.Product{}).Where("brand_id = ?", b.ID).Count(&count)
			res = append(res, BrandResponse{
				ID:           b.ID,
				Name:         b.Name,
				ProductCount: count,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/brands (yönetici)
func CreateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBrandRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name zorunlu")
		}

		b := models.Brand{Name: body.Name}
		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu marka zaten var")
		}

		return c.Status(fiber.StatusCreated).JSON(BrandResponse{
			ID:   b.ID,
			Name: b.Name,
		})
	}
}

// DELETE /api/brands/:id
func DeleteBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var b models.Brand
		if err := database.DB.First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marka bulunamadı")
		}

		var count int64
		database.DB.Model(&models.Product{}).Where("brand_id = ?", b.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu markaya bağlı ürünler var, önce onları taşı veya sil")
		}

		if err := database.DB.Delete(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Marka silindi",
		})
	}
}
