package schedule

import (
	"testing"
	"time"

	"saha-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sabit pencere: 2025-03-10 Pazartesi .. 2025-03-16 Pazar
func testWindow(t *testing.T) []WindowDay {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	days := Window(now, time.UTC)
	require.Equal(t, "2025-03-10", days[0].Date)
	require.Equal(t, 1, days[0].Weekday)
	return days
}

func TestReconcileCompleteness(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	s1 := seedStore(t, db, "Merkez Market")
	s2 := seedStore(t, db, "Sahil Market")
	s3 := seedStore(t, db, "Çarşı Market")

	// Pazartesi iki mağaza, Perşembe bir mağaza
	seedSchedule(t, db, user, s1, 1)
	seedSchedule(t, db, user, s2, 1)
	seedSchedule(t, db, user, s3, 4)

	visits, err := Reconcile(db, &user.ID, testWindow(t))
	require.NoError(t, err)

	// Her eşleşen (şablon, gün) çifti için tam olarak bir satır
	require.Len(t, visits, 3)

	seen := make(map[string]int)
	for _, v := range visits {
		seen[visitKey(v.RouteScheduleID, v.VisitDate)]++
		assert.False(t, v.IsCompleted, "kanıt yokken varsayılan tamamlanmamış")
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "çift satır: %s", key)
	}
}

func TestReconcileMergesEvidence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	s1 := seedStore(t, db, "Merkez Market")
	s2 := seedStore(t, db, "Sahil Market")
	sched1 := seedSchedule(t, db, user, s1, 1)
	seedSchedule(t, db, user, s2, 1)

	// sched1 için pencere içindeki Pazartesi tamamlandı
	_, err := ToggleVisit(db, sched1.ID, mustDate(t, "2025-03-10"))
	require.NoError(t, err)

	visits, err := Reconcile(db, &user.ID, testWindow(t))
	require.NoError(t, err)
	require.Len(t, visits, 2)

	byStore := make(map[uint]ProjectedVisit)
	for _, v := range visits {
		byStore[v.StoreID] = v
	}
	assert.True(t, byStore[s1.ID].IsCompleted)
	assert.NotNil(t, byStore[s1.ID].CompletedAt)
	assert.False(t, byStore[s2.ID].IsCompleted)
	assert.Nil(t, byStore[s2.ID].CompletedAt)
}

func TestReconcileOrdering(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	sB := seedStore(t, db, "B Market")
	sA := seedStore(t, db, "A Market")

	// Aynı gün iki mağaza + daha geç bir gün
	seedSchedule(t, db, user, sB, 1)
	seedSchedule(t, db, user, sA, 1)
	seedSchedule(t, db, user, sB, 4)

	visits, err := Reconcile(db, &user.ID, testWindow(t))
	require.NoError(t, err)
	require.Len(t, visits, 3)

	// Tarih artan; aynı gün içinde mağaza adı alfabetik
	assert.Equal(t, "2025-03-10", visits[0].VisitDate)
	assert.Equal(t, "A Market", visits[0].StoreName)
	assert.Equal(t, "2025-03-10", visits[1].VisitDate)
	assert.Equal(t, "B Market", visits[1].StoreName)
	assert.Equal(t, "2025-03-13", visits[2].VisitDate)
}

func TestReconcileScope(t *testing.T) {
	db := newTestDB(t)
	ali := seedUser(t, db, "Ali Kaya")
	veli := seedUser(t, db, "Veli Demir")
	store := seedStore(t, db, "Merkez Market")

	seedSchedule(t, db, ali, store, 1)
	seedSchedule(t, db, veli, store, 2)

	days := testWindow(t)

	mine, err := Reconcile(db, &ali.ID, days)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ali.ID, mine[0].UserID)
	assert.Equal(t, "Ali Kaya", mine[0].UserName)
	assert.Equal(t, "Merkez Market", mine[0].StoreName)

	all, err := Reconcile(db, nil, days)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReconcileEffectiveRange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")

	until := mustDate(t, "2025-03-01") // pencereden önce bitti
	sched := models.RouteSchedule{
		UserID:         user.ID,
		StoreID:        store.ID,
		DayOfWeek:      1,
		IsRecurring:    true,
		EffectiveUntil: &until,
	}
	require.NoError(t, db.Create(&sched).Error)

	visits, err := Reconcile(db, &user.ID, testWindow(t))
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestReconcileEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")

	visits, err := Reconcile(db, &user.ID, testWindow(t))
	require.NoError(t, err)
	assert.NotNil(t, visits)
	assert.Empty(t, visits)
}
