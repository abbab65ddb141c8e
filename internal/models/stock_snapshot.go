package models

import "time"

// StockSnapshot: temsilcinin mağazada yaptığı stok sayımı. Aynı zamanda
// "bu kullanıcı bu mağazayı bu tarihte ziyaret etti" sinyali olarak tüketilir.
type StockSnapshot struct {
	ID        uint `gorm:"primaryKey"`
	StoreID   uint `gorm:"index;not null"`
	Store     Store
	ProductID uint `gorm:"index;not null"`
	Product   Product
	UserID    uint `gorm:"index;not null"`
	User      User

	SnapshotDate time.Time `gorm:"index;not null"` // sayım tarihi (gün hassasiyetinde)
	Quantity     float64   `gorm:"not null"`       // o gün raftaki stok
	Note         string    `gorm:"size:255"`

	// İstemcinin ürettiği tekilleştirme anahtarı. Aynı kayıt iki kez
	// gönderilirse (mobil retry) ikinci gönderim mevcut satırı döndürür.
	ClientKey string `gorm:"size:64;uniqueIndex;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
