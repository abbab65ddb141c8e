package notification

import (
	"fmt"

	"saha-backend/internal/database"
	"saha-backend/internal/models"
)

// Notify: kullanıcıya uygulama içi bildirim satırı yazar. Push/SMS gönderimi
// burada yapılmaz; istemci listeyi çeker.
func Notify(userID uint, title, body string) error {
	n := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := database.DB.Create(&n).Error; err != nil {
		return fmt.Errorf("bildirim kaydedilemedi: %w", err)
	}
	return nil
}
