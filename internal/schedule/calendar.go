package schedule

import "time"

const windowDays = 7

// WindowDay: takvim penceresindeki tek bir gün.
type WindowDay struct {
	Date    string `json:"date"`        // "2006-01-02"
	Weekday int    `json:"day_of_week"` // 0=Pazar .. 6=Cumartesi
}

// Window: iş saat dilimine göre "bugün"den başlayan 7 günlük pencereyi üretir.
// Saf fonksiyondur; sunucunun kendi saat dilimine hiçbir bağımlılığı yoktur,
// loc config'den gelir. Gün 0 her zaman iş saat dilimindeki bugündür.
func Window(now time.Time, loc *time.Location) []WindowDay {
	local := now.In(loc)

	// Günü sabitle; ay/yıl geçişlerini AddDate'in takvim aritmetiğine bırak
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]WindowDay, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, WindowDay{
			Date:    d.Format("2006-01-02"),
			Weekday: int(d.Weekday()),
		})
	}
	return days
}

// ParseDate: "YYYY-MM-DD" formatındaki ziyaret tarihini gün hassasiyetinde
// UTC time.Time'a çevirir. Tüm ziyaret/sayım tarihleri bu formda saklanır,
// böylece (schedule, tarih) karşılaştırmaları saat bileşeninden etkilenmez.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
