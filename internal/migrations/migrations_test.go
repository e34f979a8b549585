package migrations

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"m/V10__later.sql":   {Data: []byte("CREATE TABLE later (id TEXT)")},
		"m/V2__second.sql":   {Data: []byte("CREATE TABLE second (id TEXT)")},
		"m/V1__first.sql":    {Data: []byte("CREATE TABLE first (id TEXT)")},
		"m/README.md":        {Data: []byte("notes")},
		"m/nested/V3__x.sql": {Data: []byte("ignored")},
	}
}

func TestListMigrationsOrdersByNumericVersion(t *testing.T) {
	migs, err := listMigrations(testFS(), "m")
	require.NoError(t, err)

	names := make([]string, 0, len(migs))
	for _, mig := range migs {
		names = append(names, mig.Name)
	}
	assert.Equal(t, []string{"V1__first.sql", "V2__second.sql", "V10__later.sql"}, names)
	assert.Equal(t, "10", migs[2].Version)
}

func TestListMigrationsRejectsUnversionedFile(t *testing.T) {
	fsys := fstest.MapFS{"m/init.sql": {Data: []byte("SELECT 1")}}

	_, err := listMigrations(fsys, "m")
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	tests := map[string]string{
		"V1__init.sql":   "1",
		"V12__a__b.sql":  "12",
		"init.sql":       "",
		"V3_missing.sql": "",
	}
	for name, want := range tests {
		assert.Equal(t, want, parseVersion(name), name)
	}
}

func TestEmbeddedMigrationsAreVersioned(t *testing.T) {
	migs, err := listMigrations(embedded, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "1", migs[0].Version)
}

func TestApplyFSSkipsAppliedVersions(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("1"))
	for _, mig := range []struct{ version, name, stmt string }{
		{"2", "V2__second.sql", "CREATE TABLE second"},
		{"10", "V10__later.sql", "CREATE TABLE later"},
	} {
		mock.ExpectBegin()
		mock.ExpectExec(mig.stmt).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO schema_migrations`).
			WithArgs(mig.version, mig.name).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, ApplyFS(context.Background(), db, testFS(), "m"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFSRollsBackFailedMigration(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	fsys := fstest.MapFS{"m/V1__broken.sql": {Data: []byte("CREATE TABLE broken")}}
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE broken`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = ApplyFS(context.Background(), db, fsys, "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply V1__broken.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
