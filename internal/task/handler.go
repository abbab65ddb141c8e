package task

import (
	"fmt"
	"log"
	"strings"
	"time"

	"saha-backend/internal/audit"
	"saha-backend/internal/auth"
	"saha-backend/internal/database"
	"saha-backend/internal/models"
	"saha-backend/internal/notification"
	"saha-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  uint   `json:"assigned_to"`
	DueDate     string `json:"due_date"` // "2025-12-09", opsiyonel

	// Görev bir rota ziyaretine bağlanacaksa ikisi birlikte verilir;
	// ziyaret tamamlandığında propagator görevi kapatır.
	RouteScheduleID *uint  `json:"route_schedule_id"`
	ScheduledDate   string `json:"scheduled_date"`
}

type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

type TaskResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AssignedTo  uint              `json:"assigned_to"`
	Status      models.TaskStatus `json:"status"`
	DueDate     string            `json:"due_date"`

	RouteScheduleID       *uint  `json:"route_schedule_id"`
	ScheduledDate         string `json:"scheduled_date"`
	RouteTaskCompleted    *bool  `json:"route_task_completed"`
	CompletedBySnapshotID *uint  `json:"completed_by_snapshot_id"`

	CreatedAt string `json:"created_at"`
}

func taskResponse(t models.Task, rt *models.RouteTask) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format("2006-01-02")
	}
	if rt != nil {
		resp.RouteScheduleID = &rt.RouteScheduleID
		resp.ScheduledDate = rt.ScheduledDate.Format("2006-01-02")
		resp.RouteTaskCompleted = &rt.IsCompleted
		resp.CompletedBySnapshotID = rt.CompletedBySnapshotID
	}
	return resp
}

// POST /api/tasks (yönetici)
func CreateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" || body.AssignedTo == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "title ve assigned_to zorunlu")
		}

		var assignee models.User
		if err := database.DB.First(&assignee, "id = ?", body.AssignedTo).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Atanan kullanıcı bulunamadı")
		}

		t := models.Task{
			Title:       body.Title,
			Description: body.Description,
			AssignedTo:  body.AssignedTo,
			Status:      models.TaskStatusPending,
		}

		if body.DueDate != "" {
			d, err := schedule.ParseDate(body.DueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_date formatı 'YYYY-MM-DD' olmalı")
			}
			t.DueDate = &d
		}

		var sched models.RouteSchedule
		var scheduledDate time.Time
		var routeTask *models.RouteTask
		if body.RouteScheduleID != nil {
			if body.ScheduledDate == "" {
				return fiber.NewError(fiber.StatusBadRequest, "route_schedule_id verildiyse scheduled_date zorunlu")
			}
			d, err := schedule.ParseDate(body.ScheduledDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "scheduled_date formatı 'YYYY-MM-DD' olmalı")
			}
			scheduledDate = d
			if err := database.DB.First(&sched, "id = ?", *body.RouteScheduleID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Rota planı bulunamadı")
			}
		}

		createdBy, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		t.CreatedBy = createdBy

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Görev oluşturulamadı")
		}

		if body.RouteScheduleID != nil {
			rt := models.RouteTask{
				TaskID:          t.ID,
				RouteScheduleID: sched.ID,
				StoreID:         sched.StoreID,
				UserID:          sched.UserID,
				ScheduledDate:   scheduledDate,
			}
			if err := database.DB.Create(&rt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Rota görevi oluşturulamadı")
			}
			routeTask = &rt
		}

		// Bildirim best-effort
		if err := notification.Notify(assignee.ID, "Yeni görev", t.Title); err != nil {
			log.Printf("[WARN] görev bildirimi yazılamadı (görev %d): %v", t.ID, err)
		}

		var creator models.User
		if err := database.DB.First(&creator, "id = ?", createdBy).Error; err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      createdBy,
				UserName:    creator.Name,
				EntityType:  "task",
				EntityID:    t.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Görev: %s -> %s", t.Title, assignee.Name),
				Before:      nil,
				After:       t,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(taskResponse(t, routeTask))
	}
}

// GET /api/tasks?status=&user_id=
func ListTasksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Task{})

		if s := c.Query("status"); s != "" {
			status := models.TaskStatus(s)
			if !status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			q = q.Where("status = ?", status)
		}
		if s := c.Query("user_id"); s != "" {
			var uid uint
			if _, err := fmt.Sscan(s, &uid); err != nil || uid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "user_id geçersiz")
			}
			q = q.Where("assigned_to = ?", uid)
		}

		var tasks []models.Task
		if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Görevler listelenemedi")
		}

		return c.JSON(tasksWithRouteInfo(tasks))
	}
}

// GET /api/tasks/my
func MyTasksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var tasks []models.Task
		if err := database.DB.Where("assigned_to = ?", userID).
			Order("created_at DESC").Find(&tasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Görevler listelenemedi")
		}

		return c.JSON(tasksWithRouteInfo(tasks))
	}
}

// Rota bağlarını tek sorguda çek, görevlere eşle (görev başına sorgu yok)
func tasksWithRouteInfo(tasks []models.Task) []TaskResponse {
	taskIDs := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}

	rtByTask := make(map[uint]models.RouteTask)
	if len(taskIDs) > 0 {
		var routeTasks []models.RouteTask
		if err := database.DB.Where("task_id IN ?", taskIDs).Find(&routeTasks).Error; err == nil {
			for _, rt := range routeTasks {
				rtByTask[rt.TaskID] = rt
			}
		}
	}

	res := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		if rt, ok := rtByTask[t.ID]; ok {
			res = append(res, taskResponse(t, &rt))
		} else {
			res = append(res, taskResponse(t, nil))
		}
	}
	return res
}

// PUT /api/tasks/:id/status
//
// Elle durum değişikliği. Stok sayımı kanıtıyla kapanmış bir görev elle
// geri açılamaz; önce sayımın silinmesi gerekir (geri alma oradan yürür).
func UpdateTaskStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateTaskStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !body.Status.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "status geçersiz (pending/in_progress/completed/cancelled/overdue)")
		}

		var t models.Task
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Görev bulunamadı")
		}

		var rt models.RouteTask
		hasRouteTask := database.DB.Where("task_id = ?", t.ID).First(&rt).Error == nil

		if hasRouteTask && rt.CompletedBySnapshotID != nil && body.Status != models.TaskStatusCompleted {
			return fiber.NewError(fiber.StatusConflict, "Bu görev stok sayımı kanıtıyla tamamlandı, elle geri alınamaz; önce sayımı sil")
		}

		before := t
		t.Status = body.Status
		if err := database.DB.Save(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Görev güncellenemedi")
		}

		// Elle tamamlamada rota bağını da kapat (sayım referansı olmadan)
		if hasRouteTask {
			if body.Status == models.TaskStatusCompleted && !rt.IsCompleted {
				database.DB.Model(&models.RouteTask{}).Where("id = ?", rt.ID).
					Update("is_completed", true)
			}
			if body.Status != models.TaskStatusCompleted && rt.IsCompleted {
				database.DB.Model(&models.RouteTask{}).Where("id = ?", rt.ID).
					Update("is_completed", false)
			}
		}

		userID, err := auth.CurrentUserID(c)
		if err == nil {
			var user models.User
			if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
				_ = audit.WriteLog(audit.LogOptions{
					UserID:      userID,
					UserName:    user.Name,
					EntityType:  "task",
					EntityID:    t.ID,
					Action:      models.AuditActionUpdate,
					Description: fmt.Sprintf("Görev durumu: %s -> %s (%s)", before.Status, t.Status, t.Title),
					Before:      before,
					After:       t,
				})
			}
		}

		return c.JSON(taskResponse(t, nil))
	}
}
