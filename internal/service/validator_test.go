package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

func TestValidatorCleanRoutine(t *testing.T) {
	validator := NewRoutineValidator()
	entries := append(weeklyEntries("11a", 1, [3]int{2, 4, 6}), weeklyEntries("11b", 2, [3]int{1, 3, 5})...)

	assert.Empty(t, validator.Validate(entries))
}

func TestValidatorTeacherDoubleBooking(t *testing.T) {
	validator := NewRoutineValidator()
	entries := []models.SlotEntry{
		entry("11a", "Sun", 1, 1, 2, 1),
		entry("11b", "Sun", 1, 1, 2, 2),
	}

	violations := validator.Validate(entries)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, models.ViolationTeacherDoubleBooking, v.Kind)
	assert.Equal(t, "Sun", v.Day)
	assert.Equal(t, 1, v.Period)
	assert.Equal(t, 2, v.ResourceID)
	assert.Equal(t, []string{"11a", "11b"}, v.Sections)
}

func TestValidatorRoomDoubleBooking(t *testing.T) {
	validator := NewRoutineValidator()
	entries := []models.SlotEntry{
		entry("11a", "Mon", 3, 1, 2, 1),
		entry("11b", "Mon", 3, 2, 4, 1),
	}

	violations := validator.Validate(entries)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, models.ViolationRoomDoubleBooking, v.Kind)
	assert.Equal(t, 1, v.ResourceID)
	assert.ElementsMatch(t, []string{"11a", "11b"}, v.Sections)
}

func TestValidatorTimeslotCollision(t *testing.T) {
	validator := NewRoutineValidator()
	// Same section, same slot, different teachers and rooms. Only the store
	// enforces key uniqueness; raw slices can carry duplicates.
	entries := []models.SlotEntry{
		entry("11a", "Tue", 2, 1, 2, 1),
		entry("11a", "Tue", 2, 2, 4, 2),
	}

	violations := validator.Validate(entries)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, models.ViolationTimeslotCollision, v.Kind)
	assert.Equal(t, []string{"11a"}, v.Sections)
}

func TestValidatorDayAndPeriodBounds(t *testing.T) {
	validator := NewRoutineValidator()
	entries := []models.SlotEntry{
		entry("11a", "Fri", 1, 1, 2, 1),
		entry("11a", "Sun", 7, 2, 4, 1),
		entry("11a", "Mon", 0, 3, 6, 1),
	}

	violations := validator.Validate(entries)
	require.Len(t, violations, 3)

	kinds := make(map[models.ViolationKind]int)
	for _, v := range violations {
		kinds[v.Kind]++
	}
	assert.Equal(t, 1, kinds[models.ViolationInvalidDay])
	assert.Equal(t, 2, kinds[models.ViolationInvalidPeriod])
}

func TestValidatorNeverMutatesEntries(t *testing.T) {
	validator := NewRoutineValidator()
	entries := []models.SlotEntry{
		entry("11a", "Sun", 1, 1, 2, 1),
		entry("11b", "Sun", 1, 1, 2, 2),
	}
	before := make([]models.SlotEntry, len(entries))
	copy(before, entries)

	_ = validator.Validate(entries)
	assert.Equal(t, before, entries)
}

func TestValidatorOrdersFindingsByDayThenPeriod(t *testing.T) {
	validator := NewRoutineValidator()
	entries := []models.SlotEntry{
		entry("11a", "Wed", 5, 1, 9, 1),
		entry("11b", "Wed", 5, 2, 9, 2),
		entry("11a", "Sun", 2, 1, 8, 3),
		entry("11b", "Sun", 2, 2, 8, 4),
	}

	violations := validator.Validate(entries)
	require.Len(t, violations, 2)
	assert.Equal(t, "Sun", violations[0].Day)
	assert.Equal(t, "Wed", violations[1].Day)
}
