package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/linemk/grouparena/internal/app"
	"github.com/linemk/grouparena/internal/config"
	"github.com/linemk/grouparena/internal/storage"
)

// buildMigrateDSN собирает строку подключения (DSN) для мигратора
func buildMigrateDSN(dbCfg config.DatabaseConfig, migrationTable string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&x-migrations-table=%s",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.Name, migrationTable,
	)
}

func main() {
	var migrationsPathFlag, seedPath string
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.StringVar(&seedPath, "seed", "", "path to games.json to import into the catalog tables")

	// MustLoad сам разбирает флаги
	cfg := config.MustLoad()

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	if cfg.Database.Password == "" {
		cfg.Database.Password = GetEnv("DB_PASSWORD", "")
	}
	if cfg.Database.Password == "" {
		log.Fatal("DB_PASSWORD environment variable is required")
	}

	migrationTableName := "migrations"

	// Создаем объект мигратора
	m, err := migrate.New(
		"file://"+migrationsPath,
		buildMigrateDSN(cfg.Database, migrationTableName),
	)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
		} else {
			log.Fatalf("migration failed: %v", err)
		}
	} else {
		log.Println("Migrations applied successfully")
	}

	if seedPath == "" {
		return
	}

	if err := seed(cfg.Database, seedPath); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("Catalog imported from %s", seedPath)
}

// seed читает JSON-документ каталога и перезаписывает им таблицы categories и games
func seed(dbCfg config.DatabaseConfig, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc, err := storage.NewFileSource(path).Load(ctx)
	if err != nil {
		return err
	}

	db, err := app.OpenDB(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewCatalogRepository(db)
	if err := repo.ReplaceDocument(ctx, doc); err != nil {
		return err
	}

	fmt.Println("Imported categories:")
	for _, c := range doc.Categories {
		fmt.Printf(" - %s (%d games)\n", c.Name, len(c.Games))
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := lookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Обертка для os.LookupEnv, чтобы можно было легко подменить в тестах
func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}
