package schedule

import (
	"errors"
	"log"
	"time"

	"saha-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleVisit: (plan, tarih) için ziyaret durumunu tersine çevirir. Satır
// yoksa tamamlanmış olarak oluşturur; varsa is_completed'ı çevirir.
// Eşzamanlı iki toggle, (route_schedule_id, visit_date) unique index'i
// sayesinde asla çift satır üretmez: kaybeden insert conflict'e düşer ve
// update'e dönüşür.
func ToggleVisit(db *gorm.DB, scheduleID uint, date time.Time) (bool, error) {
	var sched models.RouteSchedule
	if err := db.First(&sched, "id = ?", scheduleID).Error; err != nil {
		return false, err
	}

	var visit models.VisitLog
	err := db.Where("route_schedule_id = ? AND visit_date = ?", sched.ID, date).
		First(&visit).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		visit = models.VisitLog{
			RouteScheduleID: sched.ID,
			StoreID:         sched.StoreID,
			UserID:          sched.UserID,
			VisitDate:       date,
			IsCompleted:     true,
			CompletedAt:     &now,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "route_schedule_id"}, {Name: "visit_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
			}),
		}).Create(&visit).Error; err != nil {
			return false, err
		}

		propagateBestEffort(db, sched.ID, date, nil)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	visit.IsCompleted = !visit.IsCompleted
	if visit.IsCompleted {
		now := time.Now()
		visit.CompletedAt = &now
	} else {
		visit.CompletedAt = nil
	}
	if err := db.Save(&visit).Error; err != nil {
		return false, err
	}

	if visit.IsCompleted {
		propagateBestEffort(db, sched.ID, date, nil)
	}
	return visit.IsCompleted, nil
}

// RecordVisitFromSnapshot: stok sayımını ziyaret kanıtı olarak işler.
// (user, store, haftanın günü) ile eşleşen plan yoksa sessizce çıkar —
// plansız bir mağazada sayım yapılması hata değildir. Plan varsa o günün
// ziyaret kaydını SİL ve tamamlanmış olarak YENİDEN OLUŞTUR: sayım kanıtı,
// daha önce elle geri alınmış bir ziyaretin önüne geçer. Aynı sayımın iki
// kez gönderilmesi aynı son durumu üretir.
func RecordVisitFromSnapshot(db *gorm.DB, storeID, userID uint, date time.Time, snapshotID uint) error {
	dow := int(date.Weekday())

	var sched models.RouteSchedule
	err := db.Where("user_id = ? AND store_id = ? AND day_of_week = ?", userID, storeID, dow).
		First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// delete-then-insert: merge değil, sayım kanıtı o günün tek gerçeğidir
	if err := tx.Where("route_schedule_id = ? AND visit_date = ?", sched.ID, date).
		Delete(&models.VisitLog{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	visit := models.VisitLog{
		RouteScheduleID: sched.ID,
		StoreID:         sched.StoreID,
		UserID:          sched.UserID,
		VisitDate:       date,
		IsCompleted:     true,
		CompletedAt:     &now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "route_schedule_id"}, {Name: "visit_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}),
	}).Create(&visit).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	propagateBestEffort(db, sched.ID, date, &snapshotID)
	return nil
}

// Propagasyon hatası kanıt yazımını geri almaz: kayıt zaten kalıcı, görev
// durumu bir sonraki kanıtta ya da elle düzeltilebilir. Sadece logla.
func propagateBestEffort(db *gorm.DB, scheduleID uint, date time.Time, snapshotID *uint) {
	if err := PropagateCompletion(db, scheduleID, date, snapshotID); err != nil {
		log.Printf("[WARN] görev durumu yansıtılamadı (plan %d, tarih %s): %v",
			scheduleID, date.Format("2006-01-02"), err)
	}
}
