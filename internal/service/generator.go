package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

// seniorClassID marks the class level whose sections get the senior end of
// the designation order when picking teachers.
const seniorClassID = 12

// RoutineGenerator builds a full weekly routine for one section using a
// greedy first-fit pass over the catalog. All availability decisions go
// through the shared tracker so two sections generated in sequence never
// claim the same teacher or room.
type RoutineGenerator struct {
	logger *zap.Logger
}

// NewRoutineGenerator creates a generator. A nil logger falls back to a no-op.
func NewRoutineGenerator(logger *zap.Logger) *RoutineGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutineGenerator{logger: logger}
}

// Generate produces the section's weekly entries and commits every claimed
// teacher and room on the tracker. Subjects are laid out by ascending id into
// periods 1..N and replicated across the working week. The section gets one
// exclusive room, reserved across all of its periods before any subject is
// placed; a subject with no free teacher is skipped with a warning rather
// than failing the whole section.
func (g *RoutineGenerator) Generate(sectionCode string, catalog *models.Catalog, tracker *AvailabilityTracker) (models.GenerationResult, error) {
	result := models.GenerationResult{SectionCode: sectionCode}

	section, ok := catalog.SectionByCode(sectionCode)
	if !ok {
		return result, appErrors.Clone(appErrors.ErrSectionNotFound,
			fmt.Sprintf("section %q not found", sectionCode))
	}
	result.SectionCode = section.Code

	group, ok := catalog.SubjectGroupByCode(section.GroupCode)
	if !ok {
		return result, appErrors.Clone(appErrors.ErrSubjectGroupNotFound,
			fmt.Sprintf("subject group %q not found for section %s", section.GroupCode, section.Code))
	}

	subjects := catalog.SubjectsByIDs(group.SubjectIDs)
	if len(subjects) > len(models.Periods) {
		subjects = subjects[:len(models.Periods)]
	}

	room, err := g.pickRoom(catalog, tracker, len(subjects))
	if err != nil {
		return result, err
	}

	// Reserve the room for the whole week up front. A period whose subject
	// ends up unstaffed must still block the room for other sections.
	reserved := make([]int, len(subjects))
	for i := range subjects {
		reserved[i] = models.Periods[i]
	}
	for _, day := range models.Days {
		for _, period := range reserved {
			tracker.CommitRoom(day, period, room.ID)
		}
	}
	result.RoomID = room.ID
	result.ReservedPeriods = reserved

	preferSenior := section.ClassID == seniorClassID
	shiftLogID := 0
	if len(catalog.Shifts) > 0 {
		shiftLogID = catalog.Shifts[0].ID
	}

	for i, subject := range subjects {
		period := models.Periods[i]

		teacherID, ok := g.pickTeacher(catalog, tracker, subject, period, preferSenior)
		if !ok {
			g.logger.Warn("no free teacher for subject",
				zap.String("section", section.Code),
				zap.String("subject", subject.Name),
				zap.Int("period", period))
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no available teacher for %s at period %d", subject.Name, period))
			continue
		}

		for _, day := range models.Days {
			entry := models.SlotEntry{
				SectionCode: section.Code,
				Day:         day,
				Period:      period,
				SubjectID:   subject.ID,
				TeacherID:   teacherID,
				RoomID:      room.ID,
				ShiftLogID:  shiftLogID,
			}
			tracker.CommitTeacher(day, period, teacherID)
			result.Entries = append(result.Entries, entry)
		}
	}

	g.logger.Info("routine generated",
		zap.String("section", section.Code),
		zap.Int("entries", len(result.Entries)),
		zap.Int("room", room.RoomNo),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// pickRoom returns the lowest-numbered room that is free at every slot the
// section will occupy. The room stays exclusive to the section for the week.
func (g *RoutineGenerator) pickRoom(catalog *models.Catalog, tracker *AvailabilityTracker, periodCount int) (models.Room, error) {
	for _, room := range catalog.RoomsByNumber() {
		if g.roomFreeAllWeek(tracker, room.ID, periodCount) {
			return room, nil
		}
	}
	return models.Room{}, appErrors.ErrNoRoomAvailable
}

func (g *RoutineGenerator) roomFreeAllWeek(tracker *AvailabilityTracker, roomID, periodCount int) bool {
	for _, day := range models.Days {
		for i := 0; i < periodCount; i++ {
			if !tracker.IsRoomFree(day, models.Periods[i], roomID) {
				return false
			}
		}
	}
	return true
}

// pickTeacher returns the first department teacher, in designation order, who
// is free at the period on every working day. The same teacher holds the
// subject all week.
func (g *RoutineGenerator) pickTeacher(catalog *models.Catalog, tracker *AvailabilityTracker, subject models.Subject, period int, preferSenior bool) (int, bool) {
	for _, teacher := range catalog.TeachersByDepartment(subject.Department, preferSenior) {
		free := true
		for _, day := range models.Days {
			if !tracker.IsTeacherFree(day, period, teacher.ID) {
				free = false
				break
			}
		}
		if free {
			return teacher.ID, true
		}
	}
	return 0, false
}
