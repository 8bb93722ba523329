package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Connection poolers in transaction mode can hand a statement to a backend
// that never saw its parse step. Both errors are safe to retry once.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "requires")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000")
}

func isStaleStatement(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

func getContext(ctx context.Context, db sqlx.QueryerContext, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, db, dest, query, args...)
	if isStaleStatement(err) {
		err = sqlx.GetContext(ctx, db, dest, query, args...)
	}
	return err
}

func selectContext(ctx context.Context, db sqlx.QueryerContext, dest any, query string, args ...any) error {
	err := sqlx.SelectContext(ctx, db, dest, query, args...)
	if isStaleStatement(err) {
		err = sqlx.SelectContext(ctx, db, dest, query, args...)
	}
	return err
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func existsBy(ctx context.Context, db sqlx.QueryerContext, table string, conditions ...qb.Condition) (bool, error) {
	query, args, err := qb.Select("1").From(table).
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists %s query: %w", table, err)
	}

	var one int
	if err := getContext(ctx, db, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return true, nil
}

func countRows(ctx context.Context, db sqlx.QueryerContext, table string) (int64, error) {
	query, args, err := qb.Select("COUNT(*)").From(table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", table, err)
	}

	var n int64
	if err := getContext(ctx, db, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// replaceInTx deletes the rows matched by del and inserts model in one
// transaction.
func replaceInTx(ctx context.Context, db *sqlx.DB, kind string, del *qb.DeleteBuilder, table string, model any) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace %s: %w", kind, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := del.ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", kind, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	insertQuery, insertArgs, err := qb.InsertModel(table, model, "")
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", kind, err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", kind, err)
	}
	return nil
}
