package leave_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepo(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return leave.NewRepository(gdb), mock
}

func TestLeaveRepository_FindOverlapping(t *testing.T) {
	start := time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("success locked read returns match", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		rows := sqlmock.NewRows([]string{"id", "driver_id", "type", "start_date", "end_date", "status"}).
			AddRow(7, 1, "vacation", start, end, "approved")
		mock.ExpectQuery(`SELECT \* FROM "driver_leaves" WHERE driver_id = \$1 AND status IN \(\$2,\$3\) AND start_date <= \$4 AND end_date >= \$5.*FOR UPDATE`).
			WillReturnRows(rows)

		got, err := repo.FindOverlapping(context.Background(), 1, start, end, nil, true)
		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, "approved", got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success unlocked read excludes the given id", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		exclude := uint(7)
		mock.ExpectQuery(`SELECT \* FROM "driver_leaves" WHERE driver_id = \$1 AND status IN \(\$2,\$3\) AND start_date <= \$4 AND end_date >= \$5 AND id <> \$6`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		got, err := repo.FindOverlapping(context.Background(), 1, start, end, &exclude, false)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
