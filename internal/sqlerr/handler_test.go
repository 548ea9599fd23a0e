package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/orderhub/internal/errs"
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Order{}, &model.Offer{}))
	return db
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorDuplicatePrimaryKey(t *testing.T) {
	db := openStore(t)
	require.NoError(t, db.Create(&model.User{ID: 1}).Error)

	err := db.Create(&model.User{ID: 1}).Error
	require.Error(t, err)
	assert.Equal(t, UniqueViolation, ErrCode(err))

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this id already exists", httpErr.Message)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	db := openStore(t)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	missing := 7
	err := db.Create(&model.Offer{OrderID: &missing}).Error
	require.Error(t, err)

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RECORD_NOT_FOUND", httpErr.Code)
}

func TestHandleErrorRecordNotFound(t *testing.T) {
	err := fmt.Errorf("table:orders: %w", gorm.ErrRecordNotFound)

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Order not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(gorm.ErrRecordNotFound))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewBadRequestError("bad", false, nil, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestParseConstraintTarget(t *testing.T) {
	table, column := parseConstraintTarget("NOT NULL constraint failed: orders.name")
	assert.Equal(t, "orders", table)
	assert.Equal(t, "name", column)

	table, column = parseConstraintTarget("FOREIGN KEY constraint failed")
	assert.Empty(t, table)
	assert.Empty(t, column)
}
