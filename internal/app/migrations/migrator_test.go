package migrations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow answers the applied-version lookup.
type fakeRow struct {
	exists bool
}

func (r *fakeRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.exists
	return nil
}

// fakeTx records the statements run on the migration transaction. The
// embedded interface covers the methods the migrator never touches.
type fakeTx struct {
	pgx.Tx
	execs      []string
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeMigrationDB struct {
	execs   []string
	applied bool
	tx      *fakeTx
}

func (db *fakeMigrationDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (db *fakeMigrationDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &fakeRow{exists: db.applied}
}

func (db *fakeMigrationDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.tx == nil {
		db.tx = &fakeTx{}
	}
	return db.tx, nil
}

func writeMigrationFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "001_init.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE pupils (id BIGINT);"), 0o644))
	return path
}

func poolRecordedVersion(db *fakeMigrationDB) bool {
	for _, sql := range db.execs {
		if strings.Contains(sql, "INSERT INTO schema_migrations") {
			return true
		}
	}
	return false
}

func TestMigrateRecordsVersionOnTransaction(t *testing.T) {
	db := &fakeMigrationDB{}
	m := NewMigrator(db)

	require.NoError(t, m.MigrateFromFile(writeMigrationFile(t)))

	// Schema change and version row share one transaction.
	require.Len(t, db.tx.execs, 2)
	assert.Contains(t, db.tx.execs[0], "CREATE TABLE pupils")
	assert.Contains(t, db.tx.execs[1], "INSERT INTO schema_migrations")
	assert.True(t, db.tx.committed)
	assert.False(t, poolRecordedVersion(db))
}

func TestMigrateCommitFailureRecordsNothing(t *testing.T) {
	db := &fakeMigrationDB{tx: &fakeTx{commitErr: errors.New("commit failed")}}
	m := NewMigrator(db)

	err := m.MigrateFromFile(writeMigrationFile(t))
	require.Error(t, err)

	// A failed commit must not leave the version behind, or the file
	// would be skipped forever without its schema change.
	assert.False(t, poolRecordedVersion(db))
	assert.False(t, db.tx.committed)
}

func TestMigrateSkipsAppliedVersion(t *testing.T) {
	db := &fakeMigrationDB{applied: true}
	m := NewMigrator(db)

	require.NoError(t, m.MigrateFromFile(writeMigrationFile(t)))
	assert.Nil(t, db.tx)
}
