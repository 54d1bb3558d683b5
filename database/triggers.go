package database

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
)

// ChangeChannel is the NOTIFY channel the triggers publish to.
const ChangeChannel = "table_changes"

// WatchedTables are the tables whose row changes are broadcast.
var WatchedTables = []string{
	"content_sections",
	"projects",
	"reviews",
	"orders",
	"contact_messages",
	"user_roles",
}

const notifyFunctionSQL = `
CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
DECLARE
	record_id text;
BEGIN
	IF TG_OP = 'DELETE' THEN
		record_id := OLD.id::text;
	ELSE
		record_id := NEW.id::text;
	END IF;
	PERFORM pg_notify('` + ChangeChannel + `', json_build_object(
		'table', TG_TABLE_NAME,
		'type', lower(TG_OP),
		'id', record_id
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

// triggerStatements returns the statements that (re)attach the notify trigger to table.
func triggerStatements(table string) []string {
	ident := pgx.Identifier{table}.Sanitize()
	trigger := pgx.Identifier{table + "_notify_change"}.Sanitize()
	return []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, ident),
		fmt.Sprintf("CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH ROW EXECUTE FUNCTION notify_table_change()", trigger, ident),
	}
}

// InstallChangeTriggers creates the notify function and attaches it to each table.
func InstallChangeTriggers(db *gorm.DB, tables ...string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(notifyFunctionSQL).Error; err != nil {
			return fmt.Errorf("create notify function: %w", err)
		}
		for _, table := range tables {
			for _, stmt := range triggerStatements(table) {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("attach notify trigger to %s: %w", table, err)
				}
			}
		}
		return nil
	})
}
