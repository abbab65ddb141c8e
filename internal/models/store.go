package models

import "time"

type Store struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"` // Opsiyonel telefon
	Region    string `gorm:"size:50;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
