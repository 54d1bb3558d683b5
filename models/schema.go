package models

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&ContentSection{},
		&Project{},
		&Review{},
		&Order{},
		&ContactMessage{},
		&UserRole{},
	}
}

// Migrate creates or updates the tables backing every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// GenerateModels migrates with verbose SQL logging, prints the column report
// and writes typed gorm/gen query helpers for every model under outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	verbose := db.Session(&gorm.Session{
		Logger: logger.New(
			stdLogger{},
			logger.Config{LogLevel: logger.Info, Colorful: true},
		),
		SkipDefaultTransaction: true,
	})

	log.Info().Msg("Migrating models...")
	if err := Migrate(verbose); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	reports, err := ColumnReport(db)
	if err != nil {
		return err
	}
	PrintColumnReport(os.Stdout, reports)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Str("out", outPath).Msg("Query helpers generated")
	return nil
}

// stdLogger adapts gorm's logger writer to zerolog.
type stdLogger struct{}

func (stdLogger) Printf(format string, args ...interface{}) {
	log.Debug().Time("at", time.Now()).Msgf(format, args...)
}
