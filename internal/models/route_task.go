package models

import "time"

// RouteTask: bir görevi rota planındaki belirli bir ziyaret gününe bağlar.
// Ziyaret tamamlandığında propagator bu satırı (ve üst Task'ı) günceller.
// CompletedBySnapshotID, tamamlamayı tetikleyen stok sayımına geri referanstır;
// snapshot silinirse bu bağ üzerinden geri alma yapılır.
type RouteTask struct {
	ID              uint `gorm:"primaryKey"`
	TaskID          uint `gorm:"index;not null"`
	Task            Task
	RouteScheduleID uint `gorm:"index;not null"`
	StoreID         uint `gorm:"index;not null"`
	UserID          uint `gorm:"index;not null"`

	ScheduledDate time.Time `gorm:"index;not null"` // gün hassasiyetinde
	IsCompleted   bool      `gorm:"not null;default:false"`

	CompletedBySnapshotID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
