package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

// subjectAliases maps common short names onto catalog subject names so
// "math" and "Mathematics" address the same subject.
var subjectAliases = map[string]string{
	"math":  "mathematics",
	"bio":   "biology",
	"chem":  "chemistry",
	"phy":   "physics",
	"ict":   "information and communication technology",
	"eng":   "english",
	"ban":   "bangla",
	"acc":   "accounting",
	"eco":   "economics",
	"stat":  "statistics",
	"civ":   "civics",
	"hist":  "history",
	"geo":   "geography",
	"logic": "logic",
}

// Rescheduler moves every class of one subject off a given day, keeping the
// rest of the routine untouched.
type Rescheduler struct {
	logger *zap.Logger
}

// NewRescheduler creates a rescheduler. A nil logger falls back to a no-op.
func NewRescheduler(logger *zap.Logger) *Rescheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rescheduler{logger: logger}
}

// RescheduleResult reports what a reschedule pass did.
type RescheduleResult struct {
	Entries  []models.SlotEntry
	Moved    int
	Stuck    int
	Warnings []string
}

// Reschedule relocates every entry of the named subject that sits on
// avoidDay. sectionCode narrows the pass to one section when non-empty.
// Occupancy is rebuilt from the entries that stay put, then each displaced
// entry takes the first slot, scanning days in week order and periods
// ascending, where its section, teacher and room are all free. An entry with
// no viable slot keeps its original position and is reported as stuck.
func (r *Rescheduler) Reschedule(entries []models.SlotEntry, catalog *models.Catalog, subjectName, avoidDay, sectionCode string) (RescheduleResult, error) {
	result := RescheduleResult{}

	subjectIDs := r.matchSubjects(catalog, subjectName)
	if len(subjectIDs) == 0 {
		return result, appErrors.Clone(appErrors.ErrNoMatchingEntries,
			fmt.Sprintf("no subject matches %q", subjectName))
	}

	var displaced, kept []models.SlotEntry
	for _, e := range entries {
		_, isSubject := subjectIDs[e.SubjectID]
		inScope := sectionCode == "" || strings.EqualFold(e.SectionCode, sectionCode)
		if isSubject && inScope && e.Day == avoidDay {
			displaced = append(displaced, e)
			continue
		}
		kept = append(kept, e)
	}
	if len(displaced) == 0 {
		return result, appErrors.Clone(appErrors.ErrNoMatchingEntries,
			fmt.Sprintf("no %s classes found on %s", subjectName, avoidDay))
	}

	tracker := NewAvailabilityTracker()
	tracker.Rebuild(kept)
	occupied := make(map[models.SlotKey]struct{}, len(kept))
	for _, e := range kept {
		occupied[e.Key()] = struct{}{}
	}

	for _, e := range displaced {
		day, period, ok := r.findSlot(tracker, occupied, e, avoidDay)
		if !ok {
			result.Stuck++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("could not move %s period %d for section %s, left in place", e.Day, e.Period, e.SectionCode))
			r.claim(tracker, occupied, e)
			kept = append(kept, e)
			continue
		}
		moved := e
		moved.Day = day
		moved.Period = period
		r.claim(tracker, occupied, moved)
		kept = append(kept, moved)
		result.Moved++
	}

	result.Entries = kept
	r.logger.Info("subject rescheduled",
		zap.String("subject", subjectName),
		zap.String("avoid_day", avoidDay),
		zap.Int("moved", result.Moved),
		zap.Int("stuck", result.Stuck))
	return result, nil
}

// matchSubjects resolves a user-supplied subject name, alias included, to the
// set of matching catalog subject ids.
func (r *Rescheduler) matchSubjects(catalog *models.Catalog, name string) map[int]struct{} {
	needle := strings.ToLower(strings.TrimSpace(name))
	if full, ok := subjectAliases[needle]; ok {
		needle = full
	}
	ids := make(map[int]struct{})
	for _, s := range catalog.Subjects {
		lower := strings.ToLower(s.Name)
		if lower == needle || strings.Contains(lower, needle) {
			ids[s.ID] = struct{}{}
		}
	}
	return ids
}

// findSlot scans the working week in order, skipping avoidDay, for the first
// slot where the entry's section, teacher and room are all free.
func (r *Rescheduler) findSlot(tracker *AvailabilityTracker, occupied map[models.SlotKey]struct{}, e models.SlotEntry, avoidDay string) (string, int, bool) {
	for _, day := range models.Days {
		if day == avoidDay {
			continue
		}
		for _, period := range models.Periods {
			key := models.SlotKey{SectionCode: e.SectionCode, Day: day, Period: period}
			if _, busy := occupied[key]; busy {
				continue
			}
			if !tracker.IsTeacherFree(day, period, e.TeacherID) {
				continue
			}
			if !tracker.IsRoomFree(day, period, e.RoomID) {
				continue
			}
			return day, period, true
		}
	}
	return "", 0, false
}

func (r *Rescheduler) claim(tracker *AvailabilityTracker, occupied map[models.SlotKey]struct{}, e models.SlotEntry) {
	tracker.Commit(e.Day, e.Period, e.TeacherID, e.RoomID)
	occupied[e.Key()] = struct{}{}
}
