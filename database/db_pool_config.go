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
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var ErrIncompleteConfig = errors.New("incomplete database configuration")

// PoolConfig is shared by the pgx pool and gorm.
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GetPoolConfigFromEnv reads the POSTGRES_* connection settings and the DB_* pool settings:
//   - DB_MAX_OPEN_CONNS (default 25)
//   - DB_MIN_CONNS (default 2)
//   - DB_CONN_MAX_LIFETIME, e.g. "1h" (default 4h)
//   - DB_CONN_MAX_IDLE_TIME, e.g. "5m" (default 15m)
func GetPoolConfigFromEnv() PoolConfig {
	cfg := PoolConfig{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     envOr("POSTGRES_PORT", "5432"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),

		MaxOpenConns:    25,
		MinConns:        2,
		ConnMaxLifetime: 4 * time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
	}

	if val, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil && val > 0 {
		cfg.MaxOpenConns = int32(val)
	}
	if val, err := strconv.Atoi(os.Getenv("DB_MIN_CONNS")); err == nil && val >= 0 {
		cfg.MinConns = int32(val)
	}
	if val, err := time.ParseDuration(os.Getenv("DB_CONN_MAX_LIFETIME")); err == nil {
		cfg.ConnMaxLifetime = val
	}
	if val, err := time.ParseDuration(os.Getenv("DB_CONN_MAX_IDLE_TIME")); err == nil {
		cfg.ConnMaxIdleTime = val
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c PoolConfig) Validate() error {
	switch {
	case c.Host == "":
		return errors.Wrap(ErrIncompleteConfig, "POSTGRES_HOST is not set")
	case c.User == "":
		return errors.Wrap(ErrIncompleteConfig, "POSTGRES_USER is not set")
	case c.DBName == "":
		return errors.Wrap(ErrIncompleteConfig, "POSTGRES_DB is not set")
	case c.MinConns > c.MaxOpenConns:
		return errors.Wrapf(ErrIncompleteConfig, "DB_MIN_CONNS (%d) exceeds DB_MAX_OPEN_CONNS (%d)", c.MinConns, c.MaxOpenConns)
	}
	return nil
}

func (c PoolConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
