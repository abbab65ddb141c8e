package schedule

import (
	"errors"
	"fmt"
	"time"

	"saha-backend/internal/audit"
	"saha-backend/internal/auth"
	"saha-backend/internal/config"
	"saha-backend/internal/database"
	"saha-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateRouteScheduleRequest struct {
	UserID    uint   `json:"user_id"`
	StoreIDs  []uint `json:"store_ids"`
	DayOfWeek int    `json:"day_of_week"` // 0=Pazar .. 6=Cumartesi
}

type ToggleVisitRequest struct {
	VisitDate string `json:"visit_date"` // "2025-12-09"
}

// Yardımcı: audit log için kullanıcı bilgilerini al
func getUserInfoForSchedule(c *fiber.Ctx) (uint, string, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, "", err
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}
	return userID, user.Name, nil
}

// GET /api/route-schedules?user_id= (yönetici; user_id verilmezse tüm kullanıcılar)
func ListRouteSchedulesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID *uint
		if s := c.Query("user_id"); s != "" {
			var uid uint
			if _, err := fmt.Sscan(s, &uid); err != nil || uid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "user_id geçersiz")
			}
			userID = &uid
		}

		days := Window(time.Now(), cfg.BusinessLocation())
		visits, err := Reconcile(database.DB, userID, days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ziyaret planı hesaplanamadı")
		}

		return c.JSON(fiber.Map{
			"window_start": days[0].Date,
			"window_end":   days[len(days)-1].Date,
			"visits":       visits,
		})
	}
}

// GET /api/route-schedules/my (çağıran kullanıcının kendi planı)
func MyRouteSchedulesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		days := Window(time.Now(), cfg.BusinessLocation())
		visits, err := Reconcile(database.DB, &userID, days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ziyaret planı hesaplanamadı")
		}

		return c.JSON(fiber.Map{
			"window_start": days[0].Date,
			"window_end":   days[len(days)-1].Date,
			"visits":       visits,
		})
	}
}

// POST /api/route-schedules
func CreateRouteScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRouteScheduleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.UserID == 0 || len(body.StoreIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "user_id ve store_ids zorunlu")
		}
		if body.DayOfWeek < 0 || body.DayOfWeek > 6 {
			return fiber.NewError(fiber.StatusBadRequest, "day_of_week 0-6 arası olmalı (0=Pazar)")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı bulunamadı")
		}

		var storeCount int64
		if err := database.DB.Model(&models.Store{}).Where("id IN ?", body.StoreIDs).
			Count(&storeCount).Error; err != nil || storeCount != int64(len(body.StoreIDs)) {
			return fiber.NewError(fiber.StatusBadRequest, "store_ids içinde bulunamayan mağaza var")
		}

		createdBy, creatorName, err := getUserInfoForSchedule(c)
		if err != nil {
			return err
		}

		inserted, skipped, err := AddSchedules(database.DB, body.UserID, body.StoreIDs, body.DayOfWeek, createdBy)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota planı oluşturulamadı")
		}

		if inserted > 0 {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      createdBy,
				UserName:    creatorName,
				EntityType:  "route_schedule",
				EntityID:    body.UserID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Rota planı: %s için %d mağaza, gün %d (%d atlandı)", user.Name, inserted, body.DayOfWeek, skipped),
				Before:      nil,
				After:       body,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"inserted": inserted,
			"skipped":  skipped,
		})
	}
}

// DELETE /api/route-schedules/:id
func DeleteRouteScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sched models.RouteSchedule
		if err := database.DB.Preload("Store").Preload("User").First(&sched, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rota planı bulunamadı")
		}

		deletedTasks, err := DeleteSchedule(database.DB, sched.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota planı silinemedi")
		}

		userID, userName, uerr := getUserInfoForSchedule(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "route_schedule",
				EntityID:    sched.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Rota planı silindi: %s / %s (gün %d, %d görev)", sched.User.Name, sched.Store.Name, sched.DayOfWeek, deletedTasks),
				Before:      sched,
				After:       nil,
			})
		}

		return c.JSON(fiber.Map{
			"message":       "Rota planı ve bağlı kayıtları silindi",
			"deleted_tasks": deletedTasks,
		})
	}
}

// POST /api/route-schedules/:id/toggle-visit
func ToggleVisitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var scheduleID uint
		if _, err := fmt.Sscan(id, &scheduleID); err != nil || scheduleID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Plan id geçersiz")
		}

		var body ToggleVisitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		date, err := ParseDate(body.VisitDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		isCompleted, err := ToggleVisit(database.DB, scheduleID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Rota planı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ziyaret durumu güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"route_schedule_id": scheduleID,
			"visit_date":        body.VisitDate,
			"is_completed":      isCompleted,
		})
	}
}
