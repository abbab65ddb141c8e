package schedule

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"saha-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Her test kendi in-memory sqlite veritabanını alır. cache=shared zorunlu:
// gorm'un connection pool'u aynı ":memory:" için ayrı veritabanları açar.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Brand{},
		&models.Product{},
		&models.RouteSchedule{},
		&models.VisitLog{},
		&models.StockSnapshot{},
		&models.Task{},
		&models.RouteTask{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@saha.local",
		PasswordHash: "x",
		Role:         models.RoleFieldRep,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedStore(t *testing.T, db *gorm.DB, name string) models.Store {
	t.Helper()
	s := models.Store{Name: name, Address: "Test Cad. 1"}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedSchedule(t *testing.T, db *gorm.DB, user models.User, store models.Store, dayOfWeek int) models.RouteSchedule {
	t.Helper()
	sched := models.RouteSchedule{
		UserID:      user.ID,
		StoreID:     store.ID,
		DayOfWeek:   dayOfWeek,
		IsRecurring: true,
		CreatedBy:   user.ID,
	}
	require.NoError(t, db.Create(&sched).Error)
	return sched
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
