package report

import (
	"fmt"
	"time"

	"saha-backend/internal/config"
	"saha-backend/internal/database"
	"saha-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

type userSummary struct {
	UserID    uint    `json:"user_id"`
	UserName  string  `json:"user_name"`
	Planned   int     `json:"planned"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"` // 0..1
}

// GET /api/reports/visit-summary?user_id= (yönetici)
//
// Aktif pencere için kullanıcı başına planlanan/tamamlanan ziyaret sayıları.
// Ayrı bir sayaç tutulmaz; özet her seferinde reconciliation çıktısından
// hesaplanır, böylece plan listesiyle asla çelişmez.
func VisitSummaryHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID *uint
		if s := c.Query("user_id"); s != "" {
			var uid uint
			if _, err := fmt.Sscan(s, &uid); err != nil || uid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "user_id geçersiz")
			}
			userID = &uid
		}

		days := schedule.Window(time.Now(), cfg.BusinessLocation())
		visits, err := schedule.Reconcile(database.DB, userID, days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ziyaret özeti hesaplanamadı")
		}

		byUser := make(map[uint]*userSummary)
		order := make([]uint, 0)
		for _, v := range visits {
			s, ok := byUser[v.UserID]
			if !ok {
				s = &userSummary{UserID: v.UserID, UserName: v.UserName}
				byUser[v.UserID] = s
				order = append(order, v.UserID)
			}
			s.Planned++
			if v.IsCompleted {
				s.Completed++
			}
		}

		summaries := make([]userSummary, 0, len(order))
		for _, id := range order {
			s := byUser[id]
			if s.Planned > 0 {
				s.Rate = float64(s.Completed) / float64(s.Planned)
			}
			summaries = append(summaries, *s)
		}

		return c.JSON(fiber.Map{
			"window_start": days[0].Date,
			"window_end":   days[len(days)-1].Date,
			"users":        summaries,
		})
	}
}
