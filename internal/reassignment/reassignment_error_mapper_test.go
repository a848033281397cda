package reassignment

import (
	"errors"
	"net/http"
	"testing"

	"fleetops/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapJobLookupError(t *testing.T) {
	t.Run("record not found becomes job not found", func(t *testing.T) {
		err := mapJobLookupError(11, gorm.ErrRecordNotFound)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	})

	t.Run("deadlock becomes conflict", func(t *testing.T) {
		err := mapJobLookupError(11, &pgconn.PgError{Code: "40P01"})
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		assert.Equal(t, cause, mapJobLookupError(11, cause))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, mapJobLookupError(11, nil))
	})
}
