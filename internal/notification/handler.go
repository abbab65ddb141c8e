package notification

import (
	"saha-backend/internal/auth"
	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/notifications?unread=true
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("user_id = ?", userID)
		if c.Query("unread") == "true" {
			q = q.Where("is_read = ?", false)
		}

		var notifications []models.Notification
		if err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler okunamadı")
		}

		return c.JSON(notifications)
	}
}

// POST /api/notifications/:id/read
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var n models.Notification
		if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bildirim bulunamadı")
		}

		if !n.IsRead {
			n.IsRead = true
			if err := database.DB.Save(&n).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bildirim güncellenemedi")
			}
		}

		return c.JSON(fiber.Map{
			"message": "Bildirim okundu olarak işaretlendi",
		})
	}
}
