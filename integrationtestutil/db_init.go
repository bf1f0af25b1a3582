package integrationtestutil

import (
	"context"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/vulncorrelator/database"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// InitDatabaseContainer starts a postgres container and applies the embedded migrations.
// The returned function stops the pool and the container.
func InitDatabaseContainer() (shared.DB, *pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "correlator"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminateContainer := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	cfg := database.GetPoolConfigFromEnv()
	cfg.User = dbUser
	cfg.Password = dbPassword
	cfg.Host = host
	cfg.Port = port.Port()
	cfg.DBName = dbName
	cfg.SSLMode = "disable"

	db, pool, err := database.NewConnection(ctx, cfg)
	if err != nil {
		terminateContainer()
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}

	if err := database.RunMigrationsWithDB(db); err != nil {
		pool.Close()
		terminateContainer()
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	return db, pool, func() {
		pool.Close()
		terminateContainer()
	}
}
