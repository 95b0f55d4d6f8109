package repo

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func newMockDB(t *testing.T) (database.IDatabase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	return database.NewGormDB(gdb), mock
}

func TestGetPendingByPathNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	ar := NewAssetRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM `t_asset_version`").
		WithArgs("site-1", "index.html", model.AssetStatusPending, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version_id"}))

	v, err := ar.GetPendingByPath("site-1", "index.html")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPendingByPathFound(t *testing.T) {
	db, mock := newMockDB(t)
	ar := NewAssetRepo(db)

	rows := sqlmock.NewRows([]string{"id", "version_id", "site_id", "repo_path", "storage_path", "size", "status", "uploaded_by"}).
		AddRow(1, "v-1", "site-1", "index.html", "staging/site-1/1_index.html", 42, model.AssetStatusPending, "user-1")
	mock.ExpectQuery("SELECT (.+) FROM `t_asset_version`").
		WithArgs("site-1", "index.html", model.AssetStatusPending, 1).
		WillReturnRows(rows)

	v, err := ar.GetPendingByPath("site-1", "index.html")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "v-1", v.VersionId)
	assert.Equal(t, int64(42), v.Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	ar := NewAssetRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `t_asset_version` SET").
		WithArgs(model.AssetStatusDiscarded, "v-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ar.UpdateStatus("v-1", model.AssetStatusDiscarded))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCommittedEmpty(t *testing.T) {
	db, _ := newMockDB(t)
	ar := NewAssetRepo(db)

	// no ids means no query at all
	assert.NoError(t, ar.MarkCommitted(nil))
}
