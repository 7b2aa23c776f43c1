package service

import (
	"fmt"
	"sort"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

// RoutineValidator checks a full entry set for hard-constraint violations.
// Validation is diagnostic only: it never mutates or drops entries.
type RoutineValidator struct{}

// NewRoutineValidator creates a validator.
func NewRoutineValidator() *RoutineValidator {
	return &RoutineValidator{}
}

type resourceSlot struct {
	Day      string
	Period   int
	Resource int
}

// Validate scans the entries and reports every teacher double booking, room
// double booking, section timeslot collision and out-of-range day or period.
// One violation is emitted per conflicting (slot, resource) pair, naming all
// involved sections.
func (v *RoutineValidator) Validate(entries []models.SlotEntry) []models.Violation {
	var violations []models.Violation

	teacherSlots := make(map[resourceSlot][]string)
	roomSlots := make(map[resourceSlot][]string)
	sectionSlots := make(map[models.SlotKey]int)

	for _, e := range entries {
		if !models.ValidDay(e.Day) {
			violations = append(violations, models.Violation{
				Kind:     models.ViolationInvalidDay,
				Day:      e.Day,
				Period:   e.Period,
				Sections: []string{e.SectionCode},
				Message:  fmt.Sprintf("section %s has an entry on unknown day %q", e.SectionCode, e.Day),
			})
		}
		if !models.ValidPeriod(e.Period) {
			violations = append(violations, models.Violation{
				Kind:     models.ViolationInvalidPeriod,
				Day:      e.Day,
				Period:   e.Period,
				Sections: []string{e.SectionCode},
				Message:  fmt.Sprintf("section %s has an entry at invalid period %d", e.SectionCode, e.Period),
			})
		}

		tKey := resourceSlot{Day: e.Day, Period: e.Period, Resource: e.TeacherID}
		teacherSlots[tKey] = append(teacherSlots[tKey], e.SectionCode)

		rKey := resourceSlot{Day: e.Day, Period: e.Period, Resource: e.RoomID}
		roomSlots[rKey] = append(roomSlots[rKey], e.SectionCode)

		sectionSlots[e.Key()]++
	}

	for key, sections := range teacherSlots {
		if len(sections) > 1 {
			violations = append(violations, models.Violation{
				Kind:       models.ViolationTeacherDoubleBooking,
				Day:        key.Day,
				Period:     key.Period,
				ResourceID: key.Resource,
				Sections:   sortedCopy(sections),
				Message: fmt.Sprintf("teacher %d booked for sections %v at %s period %d",
					key.Resource, sortedCopy(sections), key.Day, key.Period),
			})
		}
	}

	for key, sections := range roomSlots {
		if len(sections) > 1 {
			violations = append(violations, models.Violation{
				Kind:       models.ViolationRoomDoubleBooking,
				Day:        key.Day,
				Period:     key.Period,
				ResourceID: key.Resource,
				Sections:   sortedCopy(sections),
				Message: fmt.Sprintf("room %d booked for sections %v at %s period %d",
					key.Resource, sortedCopy(sections), key.Day, key.Period),
			})
		}
	}

	for key, count := range sectionSlots {
		if count > 1 {
			violations = append(violations, models.Violation{
				Kind:     models.ViolationTimeslotCollision,
				Day:      key.Day,
				Period:   key.Period,
				Sections: []string{key.SectionCode},
				Message: fmt.Sprintf("section %s has %d entries at %s period %d",
					key.SectionCode, count, key.Day, key.Period),
			})
		}
	}

	sortViolations(violations)
	return violations
}

func sortedCopy(sections []string) []string {
	result := make([]string, len(sections))
	copy(result, sections)
	sort.Strings(result)
	return result
}

// sortViolations orders findings by day, period, kind, then resource for
// stable output; map iteration would otherwise shuffle them per run.
func sortViolations(violations []models.Violation) {
	dayIndex := make(map[string]int, len(models.Days))
	for i, d := range models.Days {
		dayIndex[d] = i
	}
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		ai, aok := dayIndex[a.Day]
		bi, bok := dayIndex[b.Day]
		if !aok {
			ai = len(models.Days)
		}
		if !bok {
			bi = len(models.Days)
		}
		if ai != bi {
			return ai < bi
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ResourceID < b.ResourceID
	})
}
