package admin

import (
	"strings"

	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StoreResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Region  string `json:"region"`
}

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Region  string `json:"region"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Region  *string `json:"region"`
}

func storeResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
		Region:  s.Region,
	}
}

// POST /api/stores (yönetici)
func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı zorunlu")
		}

		s := models.Store{
			Name:    body.Name,
			Address: body.Address,
			Phone:   body.Phone,
			Region:  body.Region,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu isimde bir mağaza zaten var")
		}

		return c.Status(fiber.StatusCreated).JSON(storeResponse(s))
	}
}

// GET /api/stores?region=
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Store{})
		if r := c.Query("region"); r != "" {
			q = q.Where("region = ?", r)
		}

		var stores []models.Store
		if err := q.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		res := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			res = append(res, storeResponse(s))
		}
		return c.JSON(res)
	}
}

// GET /api/stores/:id
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Store
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		return c.JSON(storeResponse(s))
	}
}

// PUT /api/stores/:id
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Store
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
			}
			s.Name = name
		}
		if body.Address != nil {
			s.Address = *body.Address
		}
		if body.Phone != nil {
			s.Phone = *body.Phone
		}
		if body.Region != nil {
			s.Region = *body.Region
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza güncellenemedi")
		}

		return c.JSON(storeResponse(s))
	}
}

// DELETE /api/stores/:id
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Store
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		// Rota planı bağlıyken mağaza silinmez; önce planlar kaldırılmalı
		var count int64
		database.DB.Model(&models.RouteSchedule{}).Where("store_id = ?", s.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu mağazaya bağlı rota planları var, önce onları sil")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza silinemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Mağaza silindi",
		})
	}
}
