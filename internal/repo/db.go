package repo

import (
	"ListKeeper/internal/model"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrUnsupportedDSN возвращается, если по строке подключения не удалось выбрать драйвер.
var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// InitDB открывает БД по строке подключения и выполняет миграции моделей.
//
// Поддерживаются postgres://, postgresql:// (и key=value DSN с host=),
// а также sqlite://<path> и file:<path> для SQLite (драйвер modernc.org/sqlite).
func InitDB(dsn string) (*gorm.DB, error) {
	dial, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы users, lists и images.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.List{}, &model.Image{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: strings.TrimPrefix(dsn, "sqlite://")}, nil
	case strings.HasPrefix(dsn, "file:"):
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}
