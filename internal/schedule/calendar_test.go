package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowBasics(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) // Salı

	days := Window(now, time.UTC)

	require.Len(t, days, 7)
	assert.Equal(t, "2025-06-10", days[0].Date)
	assert.Equal(t, 2, days[0].Weekday) // Salı
	assert.Equal(t, "2025-06-16", days[6].Date)

	for i := 1; i < len(days); i++ {
		prev := mustDate(t, days[i-1].Date)
		cur := mustDate(t, days[i].Date)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev), "günler ardışık olmalı")
	}
}

func TestWindowWeekdayNumbering(t *testing.T) {
	// 2025-06-08 Pazar; 0=Pazar .. 6=Cumartesi
	now := time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC)

	days := Window(now, time.UTC)

	for i, d := range days {
		assert.Equal(t, i%7, d.Weekday)
		parsed := mustDate(t, d.Date)
		assert.Equal(t, int(parsed.Weekday()), d.Weekday)
	}
}

func TestWindowMonthRollover(t *testing.T) {
	cases := []struct {
		name  string
		now   time.Time
		dates []string
	}{
		{
			name: "31 günlük ay",
			now:  time.Date(2025, 1, 29, 10, 0, 0, 0, time.UTC),
			dates: []string{"2025-01-29", "2025-01-30", "2025-01-31",
				"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04"},
		},
		{
			name: "30 günlük ay",
			now:  time.Date(2025, 4, 28, 10, 0, 0, 0, time.UTC),
			dates: []string{"2025-04-28", "2025-04-29", "2025-04-30",
				"2025-05-01", "2025-05-02", "2025-05-03", "2025-05-04"},
		},
		{
			name: "28 günlük şubat",
			now:  time.Date(2025, 2, 26, 10, 0, 0, 0, time.UTC),
			dates: []string{"2025-02-26", "2025-02-27", "2025-02-28",
				"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04"},
		},
		{
			name: "artık yıl şubatı",
			now:  time.Date(2024, 2, 26, 10, 0, 0, 0, time.UTC),
			dates: []string{"2024-02-26", "2024-02-27", "2024-02-28",
				"2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"},
		},
		{
			name: "yıl geçişi",
			now:  time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC),
			dates: []string{"2025-12-29", "2025-12-30", "2025-12-31",
				"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days := Window(tc.now, time.UTC)
			require.Len(t, days, len(tc.dates))
			for i, want := range tc.dates {
				assert.Equal(t, want, days[i].Date)
			}
		})
	}
}

func TestWindowBusinessTimezone(t *testing.T) {
	// UTC'de 10 Haziran 22:30; UTC+3'te gün çoktan 11 Haziran
	now := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)

	plus3 := Window(now, time.FixedZone("business", 3*3600))
	assert.Equal(t, "2025-06-11", plus3[0].Date)

	// UTC-5'te hâlâ 10 Haziran
	minus5 := Window(now, time.FixedZone("business", -5*3600))
	assert.Equal(t, "2025-06-10", minus5[0].Date)

	// Host saat dilimi ne olursa olsun sonuç aynı girdiden aynı çıkar
	again := Window(now, time.FixedZone("business", 3*3600))
	assert.Equal(t, plus3, again)
}
