package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"taskify/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

// driverURL переводит строку подключения postgres:// в схему драйвера pgx5://
func driverURL(connString string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

func newMigrate(connString string) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, driverURL(connString))
	if err != nil {
		return nil, fmt.Errorf("инициализация миграций: %w", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Error("Migrations: Ошибка закрытия источника", srcErr)
	}
	if dbErr != nil {
		logger.Error("Migrations: Ошибка закрытия соединения", dbErr)
	}
}

// Up применяет все недостающие миграции
func Up(connString string) error {
	logger.Info("Migrations: Применение миграций")

	m, err := newMigrate(connString)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Migrations: Не удалось применить миграции", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("версия схемы: %w", err)
	}
	logger.Info("Migrations: Схема актуальна", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Down откатывает все миграции
func Down(connString string) error {
	logger.Info("Migrations: Откат миграций")

	m, err := newMigrate(connString)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Migrations: Не удалось откатить миграции", err)
		return fmt.Errorf("откат миграций: %w", err)
	}
	return nil
}
