package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

// CatalogRepository loads the read-only reference tables from PostgreSQL.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository builds the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type subjectGroupRow struct {
	ID          int    `db:"grp_id"`
	Name        string `db:"name"`
	GroupCode   string `db:"grp_code"`
	HasSubjects string `db:"has_subjects"`
}

type shiftRow struct {
	ID       int    `db:"id"`
	Weekends string `db:"weekends"`
	Start    string `db:"start"`
	End      string `db:"end"`
}

// LoadCatalog reads all seven reference tables into one aggregate.
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	catalog := &models.Catalog{}

	if err := r.db.SelectContext(ctx, &catalog.Classes,
		`SELECT id, name, code FROM classes ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Sections,
		`SELECT id, classes_id, name, code, grp_code FROM sections ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Subjects,
		`SELECT id, name, code, department FROM subjects ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Teachers,
		`SELECT id, name, code, department, designation FROM teachers ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("load teachers: %w", err)
	}
	if err := r.db.SelectContext(ctx, &catalog.Rooms,
		`SELECT id, room_no, number_of_row, number_of_column, each_brench_capacity FROM rooms ORDER BY room_no ASC`); err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	var groupRows []subjectGroupRow
	if err := r.db.SelectContext(ctx, &groupRows,
		`SELECT grp_id, name, grp_code, has_subjects FROM subject_groups ORDER BY grp_id ASC`); err != nil {
		return nil, fmt.Errorf("load subject groups: %w", err)
	}
	for _, row := range groupRows {
		ids, err := parseIDList(row.HasSubjects)
		if err != nil {
			return nil, fmt.Errorf("subject group %s: %w", row.GroupCode, err)
		}
		catalog.SubjectGroups = append(catalog.SubjectGroups, models.SubjectGroup{
			ID:         row.ID,
			Name:       row.Name,
			GroupCode:  row.GroupCode,
			SubjectIDs: ids,
		})
	}

	var shiftRows []shiftRow
	if err := r.db.SelectContext(ctx, &shiftRows,
		`SELECT id, weekends, "start", "end" FROM shift_logs ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("load shift logs: %w", err)
	}
	for _, row := range shiftRows {
		catalog.Shifts = append(catalog.Shifts, models.Shift{
			ID:       row.ID,
			Weekdays: parseStringList(row.Weekends),
			Start:    row.Start,
			End:      row.End,
		})
	}

	return catalog, nil
}

// parseIDList accepts both JSON arrays ("[1,2,3]") and bare comma lists
// ("1,2,3"), the two shapes found in seeded data.
func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("parse id list %q: %w", raw, err)
		}
		return ids, nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse id list %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err == nil {
			return values
		}
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
