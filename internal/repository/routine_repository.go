package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

// routineSlotRow is the persisted shape; the surrogate id never leaves the
// repository.
type routineSlotRow struct {
	ID string `db:"id"`
	models.SlotEntry
}

// RoutineRepository persists the routine slot set in PostgreSQL.
type RoutineRepository struct {
	db *sqlx.DB
}

// NewRoutineRepository builds the repository.
func NewRoutineRepository(db *sqlx.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// UpsertBatch inserts or updates entries keyed on (section_code, day, period).
func (r *RoutineRepository) UpsertBatch(ctx context.Context, exec sqlx.ExtContext, entries []models.SlotEntry) error {
	if len(entries) == 0 {
		return nil
	}
	target := r.exec(exec)

	const query = `
INSERT INTO routine_slots (id, section_code, day, period, subject_id, teacher_id, room_id, shift_log_id)
VALUES (:id, :section_code, :day, :period, :subject_id, :teacher_id, :room_id, :shift_log_id)
ON CONFLICT (section_code, day, period) DO UPDATE
SET subject_id = EXCLUDED.subject_id,
    teacher_id = EXCLUDED.teacher_id,
    room_id = EXCLUDED.room_id,
    shift_log_id = EXCLUDED.shift_log_id`

	for _, entry := range entries {
		row := routineSlotRow{ID: uuid.NewString(), SlotEntry: entry}
		if _, err := sqlx.NamedExecContext(ctx, target, query, row); err != nil {
			return fmt.Errorf("upsert routine slot: %w", err)
		}
	}
	return nil
}

// ReplaceAll swaps the persisted set for the given entries in one transaction.
func (r *RoutineRepository) ReplaceAll(ctx context.Context, entries []models.SlotEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace routine: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_slots`); err != nil {
		return fmt.Errorf("clear routine slots: %w", err)
	}
	if err := r.UpsertBatch(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace routine: %w", err)
	}
	return nil
}

// ListAll returns every persisted entry in section, day, period order.
func (r *RoutineRepository) ListAll(ctx context.Context) ([]models.SlotEntry, error) {
	const query = `SELECT section_code, day, period, subject_id, teacher_id, room_id, shift_log_id
FROM routine_slots ORDER BY section_code ASC, day ASC, period ASC`
	var entries []models.SlotEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list routine slots: %w", err)
	}
	return entries, nil
}

// ListBySection returns the persisted entries for one section.
func (r *RoutineRepository) ListBySection(ctx context.Context, sectionCode string) ([]models.SlotEntry, error) {
	const query = `SELECT section_code, day, period, subject_id, teacher_id, room_id, shift_log_id
FROM routine_slots WHERE section_code = $1 ORDER BY day ASC, period ASC`
	var entries []models.SlotEntry
	if err := r.db.SelectContext(ctx, &entries, query, sectionCode); err != nil {
		return nil, fmt.Errorf("list routine slots by section: %w", err)
	}
	return entries, nil
}
