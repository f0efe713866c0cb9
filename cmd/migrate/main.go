package main

import (
	"log"

	"pomodoro/focus/internal/config"
	"pomodoro/focus/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	applied, err := db.ApplyMigrations(database, db.MigrationsFS(cfg.MigrationsDir))
	if err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Printf("applied %d migrations", len(applied))
}
