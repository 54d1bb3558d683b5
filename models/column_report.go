package models

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// TableReport lists the database columns a model does not map.
type TableReport struct {
	Table    string
	Exists   bool
	Unmapped []string
}

// ColumnReport compares the live schema with every model. Tables that do not
// exist yet are reported with Exists false.
func ColumnReport(db *gorm.DB) ([]TableReport, error) {
	cache := &sync.Map{}
	var reports []TableReport

	for _, model := range All() {
		parsed, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		columns, err := tableColumns(db, parsed.Table)
		if err != nil {
			return nil, err
		}

		report := TableReport{Table: parsed.Table, Exists: len(columns) > 0}
		report.Unmapped = unmappedColumns(columns, parsed.DBNames)
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Table < reports[j].Table })
	return reports, nil
}

// PrintColumnReport writes reports in a human readable form.
func PrintColumnReport(w io.Writer, reports []TableReport) {
	total := 0
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	for _, r := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", r.Table)
		switch {
		case !r.Exists:
			fmt.Fprintln(w, "Table does not exist yet (created on migration)")
		case len(r.Unmapped) == 0:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		default:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(r.Unmapped))
			for _, col := range r.Unmapped {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(r.Unmapped)
		}
	}
	fmt.Fprintf(w, "\n=== SUMMARY ===\nTotal mismatched columns across all tables: %d\n", total)
}

func tableColumns(db *gorm.DB, table string) ([]string, error) {
	var columns []string
	err := db.Raw(`SELECT column_name FROM information_schema.columns
		WHERE table_name = ? AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position`, table).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return columns, nil
}

func unmappedColumns(dbColumns, modelColumns []string) []string {
	mapped := make(map[string]struct{}, len(modelColumns))
	for _, col := range modelColumns {
		mapped[col] = struct{}{}
	}

	var unmapped []string
	for _, col := range dbColumns {
		if _, ok := mapped[col]; !ok {
			unmapped = append(unmapped, col)
		}
	}
	return unmapped
}
