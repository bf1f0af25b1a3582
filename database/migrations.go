// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"embed"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrator(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "could not create migration driver")
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "could not read embedded migrations")
	}
	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// RunMigrationsWithDB applies every pending migration.
func RunMigrationsWithDB(db *gorm.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return errors.Wrap(err, "could not create migrator")
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no pending migrations")
			return nil
		}
		return errors.Wrap(err, "could not run migrations")
	}
	slog.Info("migrations completed successfully")
	return nil
}

// RollbackMigrationsWithDB reverts the given number of migrations.
func RollbackMigrationsWithDB(db *gorm.DB, steps int) error {
	m, err := newMigrator(db)
	if err != nil {
		return errors.Wrap(err, "could not create migrator")
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not roll back migrations")
	}
	return nil
}

func GetMigrationVersionWithDB(db *gorm.DB) (uint, bool, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, errors.Wrap(err, "could not create migrator")
	}
	return m.Version()
}
