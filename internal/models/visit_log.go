package models

import "time"

// VisitLog: planlanan bir ziyaretin belirli bir tarihte gerçekleşip
// gerçekleşmediğinin kalıcı kaydı. (route_schedule_id, visit_date) başına
// en fazla bir satır olur; yazmalar upsert'tir.
type VisitLog struct {
	ID              uint `gorm:"primaryKey"`
	RouteScheduleID uint `gorm:"not null;uniqueIndex:idx_visit_logs_schedule_date"`
	StoreID         uint `gorm:"index;not null"`
	UserID          uint `gorm:"index;not null"`

	VisitDate   time.Time `gorm:"not null;uniqueIndex:idx_visit_logs_schedule_date"` // gün hassasiyetinde
	IsCompleted bool      `gorm:"not null;default:false"`
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
