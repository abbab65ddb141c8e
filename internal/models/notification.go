package models

import "time"

// Notification: uygulama içi bildirim satırı. Push/SMS gönderimi bu
// servisin işi değil; istemciler listeyi çekip okundu işaretler.
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Title  string `gorm:"size:100;not null" json:"title"`
	Body   string `gorm:"size:255" json:"body"`
	IsRead bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
