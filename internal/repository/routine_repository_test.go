package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

func newRoutineRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleEntries() []models.SlotEntry {
	return []models.SlotEntry{
		{SectionCode: "11a", Day: "Sun", Period: 1, SubjectID: 1, TeacherID: 2, RoomID: 1, ShiftLogID: 1},
		{SectionCode: "11a", Day: "Sun", Period: 2, SubjectID: 2, TeacherID: 4, RoomID: 1, ShiftLogID: 1},
	}
}

func TestRoutineRepositoryUpsertBatch(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	for range sampleEntries() {
		mock.ExpectExec("INSERT INTO routine_slots").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.UpsertBatch(context.Background(), nil, sampleEntries()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositoryUpsertBatchEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	require.NoError(t, repo.UpsertBatch(context.Background(), nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM routine_slots").
		WillReturnResult(sqlmock.NewResult(0, 2))
	for range sampleEntries() {
		mock.ExpectExec("INSERT INTO routine_slots").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), sampleEntries()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositoryReplaceAllRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM routine_slots").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), sampleEntries())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	rows := sqlmock.NewRows([]string{"section_code", "day", "period", "subject_id", "teacher_id", "room_id", "shift_log_id"}).
		AddRow("11a", "Sun", 1, 1, 2, 1, 1).
		AddRow("11a", "Sun", 2, 2, 4, 1, 1)
	mock.ExpectQuery("SELECT section_code, day, period, subject_id, teacher_id, room_id, shift_log_id").
		WillReturnRows(rows)

	entries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "11a", entries[0].SectionCode)
	assert.Equal(t, 2, entries[1].Period)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositoryListBySection(t *testing.T) {
	db, mock, cleanup := newRoutineRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	rows := sqlmock.NewRows([]string{"section_code", "day", "period", "subject_id", "teacher_id", "room_id", "shift_log_id"}).
		AddRow("11b", "Mon", 3, 3, 6, 2, 1)
	mock.ExpectQuery("SELECT section_code, day, period, subject_id, teacher_id, room_id, shift_log_id").
		WithArgs("11b").
		WillReturnRows(rows)

	entries, err := repo.ListBySection(context.Background(), "11b")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Mon", entries[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}
