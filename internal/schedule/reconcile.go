package schedule

import (
	"fmt"
	"sort"
	"time"

	"saha-backend/internal/models"

	"gorm.io/gorm"
)

// ProjectedVisit: pencere içindeki tek bir beklenen ziyaret ve güncel durumu.
type ProjectedVisit struct {
	RouteScheduleID uint       `json:"route_schedule_id"`
	UserID          uint       `json:"user_id"`
	UserName        string     `json:"user_name"`
	StoreID         uint       `json:"store_id"`
	StoreName       string     `json:"store_name"`
	StoreAddress    string     `json:"store_address"`
	VisitDate       string     `json:"visit_date"` // "2006-01-02"
	DayOfWeek       int        `json:"day_of_week"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// Reconcile: şablonları takvim penceresine yansıtır ve ziyaret kanıtlarıyla
// birleştirir. Sonuç hiçbir yerde saklanmaz; şablonlar ve kanıtlar birbirinden
// bağımsız (ve sırasız) değiştiği için her okumada yeniden hesaplanır.
// userID nil ise tüm kullanıcılar kapsanır.
//
// Kanıtlar TEK sorguda çekilir (tüm plan id'leri + tüm pencere tarihleri);
// bu yol her plan okumasında çalıştığından (şablon × gün) başına ayrı sorgu
// plan sayısıyla birlikte kabul edilemez şekilde yavaşlar.
func Reconcile(db *gorm.DB, userID *uint, days []WindowDay) ([]ProjectedVisit, error) {
	q := db.Preload("User").Preload("Store")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var scheds []models.RouteSchedule
	if err := q.Find(&scheds).Error; err != nil {
		return nil, fmt.Errorf("rota planları okunamadı: %w", err)
	}

	// Pencere günlerini haftanın gününe göre grupla
	byWeekday := make(map[int][]WindowDay)
	for _, d := range days {
		byWeekday[d.Weekday] = append(byWeekday[d.Weekday], d)
	}

	// Eşleşen (şablon, gün) çiftleri ve toplu kanıt sorgusunun anahtarları
	type pairing struct {
		sched models.RouteSchedule
		day   WindowDay
	}
	var pairs []pairing
	schedIDSet := make(map[uint]bool)
	dateSet := make(map[string]bool)

	for _, s := range scheds {
		for _, d := range byWeekday[s.DayOfWeek] {
			if !withinEffectiveRange(s, d.Date) {
				continue
			}
			pairs = append(pairs, pairing{sched: s, day: d})
			schedIDSet[s.ID] = true
			dateSet[d.Date] = true
		}
	}

	if len(pairs) == 0 {
		return []ProjectedVisit{}, nil
	}

	schedIDs := make([]uint, 0, len(schedIDSet))
	for id := range schedIDSet {
		schedIDs = append(schedIDs, id)
	}
	dates := make([]time.Time, 0, len(dateSet))
	for ds := range dateSet {
		d, err := ParseDate(ds)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	var visits []models.VisitLog
	if err := db.Where("route_schedule_id IN ? AND visit_date IN ?", schedIDs, dates).
		Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("ziyaret kayıtları okunamadı: %w", err)
	}

	visitByKey := make(map[string]models.VisitLog, len(visits))
	for _, v := range visits {
		visitByKey[visitKey(v.RouteScheduleID, v.VisitDate.Format("2006-01-02"))] = v
	}

	result := make([]ProjectedVisit, 0, len(pairs))
	for _, p := range pairs {
		pv := ProjectedVisit{
			RouteScheduleID: p.sched.ID,
			UserID:          p.sched.UserID,
			UserName:        p.sched.User.Name,
			StoreID:         p.sched.StoreID,
			StoreName:       p.sched.Store.Name,
			StoreAddress:    p.sched.Store.Address,
			VisitDate:       p.day.Date,
			DayOfWeek:       p.day.Weekday,
		}
		if v, ok := visitByKey[visitKey(p.sched.ID, p.day.Date)]; ok {
			pv.IsCompleted = v.IsCompleted
			pv.CompletedAt = v.CompletedAt
		}
		result = append(result, pv)
	}

	// Bugün ilk sırada; aynı gün içinde mağaza adına göre, istemci kararlı
	// render edebilsin
	sort.Slice(result, func(i, j int) bool {
		if result[i].VisitDate != result[j].VisitDate {
			return result[i].VisitDate < result[j].VisitDate
		}
		return result[i].StoreName < result[j].StoreName
	})

	return result, nil
}

func withinEffectiveRange(s models.RouteSchedule, date string) bool {
	if s.EffectiveFrom != nil && date < s.EffectiveFrom.Format("2006-01-02") {
		return false
	}
	if s.EffectiveUntil != nil && date > s.EffectiveUntil.Format("2006-01-02") {
		return false
	}
	return true
}

func visitKey(scheduleID uint, date string) string {
	return fmt.Sprintf("%d|%s", scheduleID, date)
}
