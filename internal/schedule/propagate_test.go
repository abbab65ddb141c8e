package schedule

import (
	"testing"

	"saha-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTaskOnRoute(t *testing.T, db *gorm.DB, sched models.RouteSchedule, date string) (models.Task, models.RouteTask) {
	t.Helper()
	task := models.Task{Title: "Raf düzeni", AssignedTo: sched.UserID, Status: models.TaskStatusPending}
	require.NoError(t, db.Create(&task).Error)
	rt := models.RouteTask{
		TaskID:          task.ID,
		RouteScheduleID: sched.ID,
		StoreID:         sched.StoreID,
		UserID:          sched.UserID,
		ScheduledDate:   mustDate(t, date),
	}
	require.NoError(t, db.Create(&rt).Error)
	return task, rt
}

func TestSnapshotCompletesTasksAndReversalRestores(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1) // Pazartesi
	date := "2025-03-10"

	task, rt := seedTaskOnRoute(t, db, sched, date)

	snap := models.StockSnapshot{
		StoreID:      store.ID,
		ProductID:    1,
		UserID:       user.ID,
		SnapshotDate: mustDate(t, date),
		Quantity:     12,
		ClientKey:    "test-key-1",
	}
	require.NoError(t, db.Create(&snap).Error)

	// Sayım kanıtı: ziyaret tamamlanır, görev kapanır, geri referans yazılır
	require.NoError(t, RecordVisitFromSnapshot(db, store.ID, user.ID, snap.SnapshotDate, snap.ID))

	var gotRT models.RouteTask
	require.NoError(t, db.First(&gotRT, rt.ID).Error)
	assert.True(t, gotRT.IsCompleted)
	require.NotNil(t, gotRT.CompletedBySnapshotID)
	assert.Equal(t, snap.ID, *gotRT.CompletedBySnapshotID)

	var gotTask models.Task
	require.NoError(t, db.First(&gotTask, task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, gotTask.Status)

	var visit models.VisitLog
	require.NoError(t, db.Where("route_schedule_id = ?", sched.ID).First(&visit).Error)
	assert.True(t, visit.IsCompleted)

	// Sayım silinir: kanıt gidince "tamamlandı" hiçbir yerde kalmamalı
	require.NoError(t, ReverseSnapshot(db, snap))

	require.NoError(t, db.First(&gotRT, rt.ID).Error)
	assert.False(t, gotRT.IsCompleted)
	assert.Nil(t, gotRT.CompletedBySnapshotID)

	require.NoError(t, db.First(&gotTask, task.ID).Error)
	assert.Equal(t, models.TaskStatusPending, gotTask.Status)

	visit = models.VisitLog{}
	require.NoError(t, db.Where("route_schedule_id = ?", sched.ID).First(&visit).Error)
	assert.False(t, visit.IsCompleted)
	assert.Nil(t, visit.CompletedAt)
}

func TestPropagateCompletionIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)
	date := "2025-03-10"

	task, _ := seedTaskOnRoute(t, db, sched, date)

	snapID := uint(42)
	require.NoError(t, PropagateCompletion(db, sched.ID, mustDate(t, date), &snapID))
	require.NoError(t, PropagateCompletion(db, sched.ID, mustDate(t, date), &snapID))

	var gotTask models.Task
	require.NoError(t, db.First(&gotTask, task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, gotTask.Status)

	var count int64
	db.Model(&models.RouteTask{}).Where("is_completed = ?", true).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPropagateCompletionNoTasks(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)

	require.NoError(t, PropagateCompletion(db, sched.ID, mustDate(t, "2025-03-10"), nil))
}

func TestManualToggleDoesNotLinkSnapshot(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")
	sched := seedSchedule(t, db, user, store, 1)
	date := "2025-03-10"

	task, rt := seedTaskOnRoute(t, db, sched, date)

	_, err := ToggleVisit(db, sched.ID, mustDate(t, date))
	require.NoError(t, err)

	var gotRT models.RouteTask
	require.NoError(t, db.First(&gotRT, rt.ID).Error)
	assert.True(t, gotRT.IsCompleted)
	assert.Nil(t, gotRT.CompletedBySnapshotID, "elle toggle sayım referansı bırakmamalı")

	var gotTask models.Task
	require.NoError(t, db.First(&gotTask, task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, gotTask.Status)
}

func TestReverseSnapshotWithoutSchedule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "Ali Kaya")
	store := seedStore(t, db, "Merkez Market")

	// Plan bu arada silinmiş: geri alma yine de hatasız biter
	snap := models.StockSnapshot{
		StoreID:      store.ID,
		ProductID:    1,
		UserID:       user.ID,
		SnapshotDate: mustDate(t, "2025-03-10"),
		Quantity:     5,
		ClientKey:    "test-key-2",
	}
	require.NoError(t, db.Create(&snap).Error)

	require.NoError(t, ReverseSnapshot(db, snap))
}
