package audit

import (
	"fmt"

	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=&user_id=&limit=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.AuditLog{})

		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}
		if s := c.Query("user_id"); s != "" {
			var uid uint
			if _, err := fmt.Sscan(s, &uid); err != nil || uid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "user_id geçersiz")
			}
			q = q.Where("user_id = ?", uid)
		}

		limit := 100
		if s := c.Query("limit"); s != "" {
			if _, err := fmt.Sscan(s, &limit); err != nil || limit <= 0 || limit > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit 1-1000 arası olmalı")
			}
		}

		var logs []models.AuditLog
		if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit loglar okunamadı")
		}

		return c.JSON(logs)
	}
}
