package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleManager    UserRole = "manager"
	RoleFieldRep   UserRole = "field_rep"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	Phone        string   `gorm:"size:50"` // Opsiyonel telefon
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	Region       string   `gorm:"size:50"` // Saha temsilcisinin bölgesi (opsiyonel)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
