package models

import "time"

// RouteSchedule: tekrarlayan ziyaret şablonu. Bir temsilcinin hangi mağazayı
// haftanın hangi günü ziyaret etmesi gerektiğini tanımlar.
type RouteSchedule struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_route_schedules_user_store_dow"`
	User      User
	StoreID   uint `gorm:"not null;uniqueIndex:idx_route_schedules_user_store_dow"`
	Store     Store
	DayOfWeek int `gorm:"not null;uniqueIndex:idx_route_schedules_user_store_dow"` // 0=Pazar .. 6=Cumartesi

	IsRecurring    bool `gorm:"not null;default:true"`
	EffectiveFrom  *time.Time
	EffectiveUntil *time.Time

	CreatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}
