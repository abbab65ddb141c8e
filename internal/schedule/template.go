package schedule

import (
	"fmt"

	"saha-backend/internal/models"

	"gorm.io/gorm"
)

// AddSchedules: bir kullanıcı için birden çok mağazaya aynı gün ataması yapar.
// (user, store, day_of_week) zaten varsa o mağaza sessizce atlanır; dönen
// değerler eklenen ve atlanan sayılarıdır.
func AddSchedules(db *gorm.DB, userID uint, storeIDs []uint, dayOfWeek int, createdBy uint) (inserted int, skipped int, err error) {
	for _, storeID := range storeIDs {
		var count int64
		if err := db.Model(&models.RouteSchedule{}).
			Where("user_id = ? AND store_id = ? AND day_of_week = ?", userID, storeID, dayOfWeek).
			Count(&count).Error; err != nil {
			return inserted, skipped, fmt.Errorf("mevcut plan kontrol edilemedi: %w", err)
		}
		if count > 0 {
			skipped++
			continue
		}

		sched := models.RouteSchedule{
			UserID:      userID,
			StoreID:     storeID,
			DayOfWeek:   dayOfWeek,
			IsRecurring: true,
			CreatedBy:   createdBy,
		}
		if err := db.Create(&sched).Error; err != nil {
			// Yarış durumunda unique index devreye girer; bunu da "atlandı" say
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped, nil
}

// DeleteSchedule: şablonu ve ona bağlı üretilmiş her şeyi tek transaction
// içinde siler: ziyaret kayıtları, rota görevleri ve onların üst Task satırları.
// Dönen değer silinen görev sayısıdır (gözlemlenebilirlik için).
func DeleteSchedule(db *gorm.DB, scheduleID uint) (deletedTasks int64, err error) {
	var sched models.RouteSchedule
	if err := db.First(&sched, "id = ?", scheduleID).Error; err != nil {
		return 0, err
	}

	var routeTasks []models.RouteTask
	if err := db.Where("route_schedule_id = ?", sched.ID).Find(&routeTasks).Error; err != nil {
		return 0, fmt.Errorf("rota görevleri okunamadı: %w", err)
	}
	taskIDs := make([]uint, 0, len(routeTasks))
	for _, rt := range routeTasks {
		taskIDs = append(taskIDs, rt.TaskID)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("işlem başlatılamadı: %w", tx.Error)
	}

	if err := tx.Where("route_schedule_id = ?", sched.ID).Delete(&models.VisitLog{}).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("ziyaret kayıtları silinemedi: %w", err)
	}

	if err := tx.Where("route_schedule_id = ?", sched.ID).Delete(&models.RouteTask{}).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("rota görevleri silinemedi: %w", err)
	}

	if len(taskIDs) > 0 {
		if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("görevler silinemedi: %w", err)
		}
	}

	if err := tx.Delete(&sched).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("rota planı silinemedi: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("işlem tamamlanamadı: %w", err)
	}

	return int64(len(taskIDs)), nil
}
