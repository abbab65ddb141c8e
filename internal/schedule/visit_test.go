package schedule

import (
	"testing"

	"saha-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleVisitCreatesCompleted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)
	date := mustDate(t, "2025-03-10") // Pazartesi

	isCompleted, err := ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)
	assert.True(t, isCompleted)

	var visits []models.VisitLog
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1)
	assert.True(t, visits[0].IsCompleted)
	assert.NotNil(t, visits[0].CompletedAt)
	assert.Equal(t, sched.ID, visits[0].RouteScheduleID)
}

func TestToggleVisitFlips(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)
	date := mustDate(t, "2025-03-10")

	_, err := ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)

	isCompleted, err := ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)
	assert.False(t, isCompleted)

	var visits []models.VisitLog
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1, "flip yeni satır açmamalı")
	assert.False(t, visits[0].IsCompleted)
	assert.Nil(t, visits[0].CompletedAt)

	// Üçüncü toggle tekrar tamamlar
	isCompleted, err = ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)
	assert.True(t, isCompleted)
}

func TestToggleVisitScheduleNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := ToggleVisit(db, 999, mustDate(t, "2025-03-10"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecordVisitFromSnapshotIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	seedSchedule(t, db, user, store, 1)
	date := mustDate(t, "2025-03-10") // Pazartesi, dow=1

	require.NoError(t, RecordVisitFromSnapshot(db, store.ID, user.ID, date, 10))
	require.NoError(t, RecordVisitFromSnapshot(db, store.ID, user.ID, date, 10))

	var visits []models.VisitLog
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1, "aynı kanıt iki kez gönderilince tek satır kalmalı")
	assert.True(t, visits[0].IsCompleted)
}

func TestRecordVisitFromSnapshotUnscheduledStore(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	// Plan yok: sayım plansız mağazada yapılmış

	err := RecordVisitFromSnapshot(db, store.ID, user.ID, mustDate(t, "2025-03-10"), 10)
	require.NoError(t, err, "plansız mağaza hata değil")

	var count int64
	db.Model(&models.VisitLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordVisitFromSnapshotDayMismatch(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	seedSchedule(t, db, user, store, 1) // Pazartesi planı

	// Salı günü sayım: plan eşleşmez, sessiz no-op
	err := RecordVisitFromSnapshot(db, store.ID, user.ID, mustDate(t, "2025-03-11"), 10)
	require.NoError(t, err)

	var count int64
	db.Model(&models.VisitLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestSnapshotOverridesManualUntoggle(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)
	date := mustDate(t, "2025-03-10")

	// Elle tamamla, sonra elle geri al
	_, err := ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)
	isCompleted, err := ToggleVisit(db, sched.ID, date)
	require.NoError(t, err)
	require.False(t, isCompleted)

	// Sayım kanıtı geri alınmış ziyaretin önüne geçer
	require.NoError(t, RecordVisitFromSnapshot(db, store.ID, user.ID, date, 10))

	var visits []models.VisitLog
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1)
	assert.True(t, visits[0].IsCompleted)
	assert.NotNil(t, visits[0].CompletedAt)
}
