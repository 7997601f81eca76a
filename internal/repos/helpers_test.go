package repos

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pms/corrections-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&types.Inmate{},
		&types.RehabProfile{},
		&types.Program{},
		&types.Station{},
		&types.Officer{},
		&types.Recommendation{},
		&types.ProgressLog{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}
