package database

import (
	"log"

	"saha-backend/internal/config"
	"saha-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Brand{},
		&models.Product{},
		&models.RouteSchedule{},
		&models.VisitLog{},
		&models.StockSnapshot{},
		&models.Task{},
		&models.RouteTask{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// visit_logs üzerindeki (route_schedule_id, visit_date) unique index'i
	// eşzamanlı snapshot gönderimlerinde çift satırı engelleyen asıl korumadır,
	// AutoMigrate'in onu gerçekten oluşturduğundan emin ol.
	if !DB.Migrator().HasIndex(&models.VisitLog{}, "idx_visit_logs_schedule_date") {
		log.Fatal("visit_logs unique index oluşturulamadı (idx_visit_logs_schedule_date)")
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
