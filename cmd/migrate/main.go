// Command migrate applies or rolls back the board schema.
//
// Usage:
//
//	migrate up
//	migrate down
//	migrate goto <version>
//	migrate version
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/message-board/internal/config"
	"github.com/message-board/internal/database"
	"github.com/message-board/pkg/logger"
)

func main() {
	log := logger.New()
	config.LoadDotEnv(log)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate up|down|goto <version>|version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	path := cfg.Server.MigrationsPath

	switch os.Args[1] {
	case "up":
		err = db.RunMigrations(path)
	case "down":
		err = db.MigrateDown(path)
	case "goto":
		if len(os.Args) < 3 {
			log.Fatal().Msg("goto requires a version")
		}
		var version uint64
		version, err = strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			log.Fatal().Err(err).Str("version", os.Args[2]).Msg("Invalid version")
		}
		err = db.MigrateToVersion(path, uint(version))
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = db.MigrationVersion(path)
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
		}
	default:
		log.Fatal().Str("command", os.Args[1]).Msg("Unknown command")
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Migration failed")
	}
}
