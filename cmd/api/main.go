package main

import (
	"context"
	"fmt"
	"os"

	"bazaar-backend/internal/app"
	"bazaar-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	fiberApp, db, rdb, err := app.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic("get DB: " + err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		panic("Postgres connection failed: " + err.Error())
	}
	fmt.Println("Postgres connected")

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unreachable; OTP verification will fail")
	} else {
		fmt.Println("Redis connected")
	}

	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Println("---")

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
