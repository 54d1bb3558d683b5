package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// DSN builds the Postgres connection string for the configured DB_TYPE.
// host overrides SUPABASE_DB_HOST when non-empty, which is how the replica DSN is derived.
func DSN(c map[string]string, host string) (string, error) {
	switch dbType := config.GetString(c, "DB_TYPE", "supa"); dbType {
	case "supa":
		if host == "" {
			host = config.GetString(c, "SUPABASE_DB_HOST", "")
		}
		if host == "" {
			return "", errs.NewConfigMissingError("SUPABASE_DB_HOST")
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host,
			config.GetString(c, "SUPABASE_DB_USER", "postgres"),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", "postgres"),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
			config.GetString(c, "SUPABASE_DB_SSLMODE", "require"),
		), nil
	default:
		return "", errs.NewConfigInvalidError("DB_TYPE", fmt.Sprintf("unsupported value %q", dbType))
	}
}

// Open connects gorm to the primary database and, when SUPABASE_DB_REPLICA_HOST is set,
// registers the replica for reads. It returns the primary DSN for the change listener.
func Open(c map[string]string) (*gorm.DB, string, error) {
	dsn, err := DSN(c, "")
	if err != nil {
		return nil, "", err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, "", errs.NewDatabaseError("connect to", "database", err)
	}

	if replicaHost := config.GetString(c, "SUPABASE_DB_REPLICA_HOST", ""); replicaHost != "" {
		replicaDSN, err := DSN(c, replicaHost)
		if err != nil {
			return nil, "", err
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replicaDSN, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, "", errs.NewDatabaseError("register replica for", "database", err)
		}
	}

	// Enable required PostgreSQL extensions
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return nil, "", errs.NewDatabaseError("enable pgcrypto on", "database", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, "", errs.NewDatabaseError("test", "database connection", err)
	}

	return db, dsn, nil
}
