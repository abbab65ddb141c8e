package schedule

import (
	"errors"
	"fmt"
	"time"

	"saha-backend/internal/models"

	"gorm.io/gorm"
)

// PropagateCompletion: tamamlanan ziyareti aynı (rota planı, tarih) üzerine
// planlanmış görevlere yansıtır. snapshotID verilmişse (kanıt bir stok
// sayımıysa) rota görevine geri referans yazılır; snapshot silinirse geri
// alma bu referans üzerinden yürür. Tamamlanmış görevlere dokunulmaz,
// dolayısıyla tekrar çağrılması güvenlidir.
func PropagateCompletion(db *gorm.DB, scheduleID uint, date time.Time, snapshotID *uint) error {
	var routeTasks []models.RouteTask
	if err := db.Where("route_schedule_id = ? AND scheduled_date = ? AND is_completed = ?",
		scheduleID, date, false).Find(&routeTasks).Error; err != nil {
		return fmt.Errorf("rota görevleri okunamadı: %w", err)
	}
	if len(routeTasks) == 0 {
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("işlem başlatılamadı: %w", tx.Error)
	}

	for _, rt := range routeTasks {
		updates := map[string]interface{}{"is_completed": true}
		if snapshotID != nil {
			updates["completed_by_snapshot_id"] = *snapshotID
		}
		if err := tx.Model(&models.RouteTask{}).Where("id = ?", rt.ID).
			Updates(updates).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("rota görevi güncellenemedi: %w", err)
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", rt.TaskID).
			Update("status", models.TaskStatusCompleted).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("görev durumu güncellenemedi: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("işlem tamamlanamadı: %w", err)
	}
	return nil
}

// ReverseSnapshot: silinen stok sayımının tamamladığı her şeyi geri alır.
// Kanıt ortadan kalktıktan sonra "tamamlandı" kalan görev istemiyoruz:
// completed_by_snapshot_id bu sayımı gösteren rota görevleri açılır, üst
// Task pending'e döner ve o günün ziyaret kaydı tamamlanmamış yapılır.
// Çağıran, snapshot'ı silen transaction'ın İÇİNDEN tx ile çağırmalıdır;
// yarım geri alma yarım silmeden daha kötüdür.
func ReverseSnapshot(tx *gorm.DB, snap models.StockSnapshot) error {
	var routeTasks []models.RouteTask
	if err := tx.Where("completed_by_snapshot_id = ?", snap.ID).Find(&routeTasks).Error; err != nil {
		return fmt.Errorf("rota görevleri okunamadı: %w", err)
	}

	for _, rt := range routeTasks {
		if err := tx.Model(&models.RouteTask{}).Where("id = ?", rt.ID).
			Updates(map[string]interface{}{
				"is_completed":             false,
				"completed_by_snapshot_id": nil,
			}).Error; err != nil {
			return fmt.Errorf("rota görevi geri alınamadı: %w", err)
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", rt.TaskID).
			Update("status", models.TaskStatusPending).Error; err != nil {
			return fmt.Errorf("görev durumu geri alınamadı: %w", err)
		}
	}

	// Sayımın işaretlediği ziyaret kaydını da geri al
	dow := int(snap.SnapshotDate.Weekday())
	var sched models.RouteSchedule
	err := tx.Where("user_id = ? AND store_id = ? AND day_of_week = ?",
		snap.UserID, snap.StoreID, dow).First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Plan bu arada silinmiş olabilir; geri alınacak ziyaret kaydı da
		// cascade ile gitmiştir
		return nil
	}
	if err != nil {
		return err
	}

	if err := tx.Model(&models.VisitLog{}).
		Where("route_schedule_id = ? AND visit_date = ?", sched.ID, snap.SnapshotDate).
		Updates(map[string]interface{}{
			"is_completed": false,
			"completed_at": nil,
		}).Error; err != nil {
		return fmt.Errorf("ziyaret kaydı geri alınamadı: %w", err)
	}

	return nil
}
