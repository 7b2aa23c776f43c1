package service

import (
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

type slotKey struct {
	Day    string
	Period int
}

// AvailabilityTracker records which teachers and rooms are committed at each
// (day, period) across all sections. It is derived state: Rebuild reproduces
// the entry-backed commitments from a store scan, and the owning session
// re-applies section room claims on top after every rebuild.
type AvailabilityTracker struct {
	teachers map[slotKey]map[int]struct{}
	rooms    map[slotKey]map[int]struct{}
}

// NewAvailabilityTracker returns an empty tracker.
func NewAvailabilityTracker() *AvailabilityTracker {
	return &AvailabilityTracker{
		teachers: make(map[slotKey]map[int]struct{}),
		rooms:    make(map[slotKey]map[int]struct{}),
	}
}

// IsTeacherFree reports whether the teacher has no commitment at the slot.
func (t *AvailabilityTracker) IsTeacherFree(day string, period, teacherID int) bool {
	set, ok := t.teachers[slotKey{Day: day, Period: period}]
	if !ok {
		return true
	}
	_, busy := set[teacherID]
	return !busy
}

// IsRoomFree reports whether the room has no commitment at the slot.
func (t *AvailabilityTracker) IsRoomFree(day string, period, roomID int) bool {
	set, ok := t.rooms[slotKey{Day: day, Period: period}]
	if !ok {
		return true
	}
	_, busy := set[roomID]
	return !busy
}

// Commit marks both the teacher and the room busy at the slot. Committing an
// already-busy id is a no-op.
func (t *AvailabilityTracker) Commit(day string, period, teacherID, roomID int) {
	t.CommitTeacher(day, period, teacherID)
	t.CommitRoom(day, period, roomID)
}

// CommitTeacher marks a single teacher busy at the slot.
func (t *AvailabilityTracker) CommitTeacher(day string, period, teacherID int) {
	key := slotKey{Day: day, Period: period}
	if t.teachers[key] == nil {
		t.teachers[key] = make(map[int]struct{})
	}
	t.teachers[key][teacherID] = struct{}{}
}

// CommitRoom marks a single room busy at the slot.
func (t *AvailabilityTracker) CommitRoom(day string, period, roomID int) {
	key := slotKey{Day: day, Period: period}
	if t.rooms[key] == nil {
		t.rooms[key] = make(map[int]struct{})
	}
	t.rooms[key][roomID] = struct{}{}
}

// Release removes the teacher and room commitments at the slot. Releasing an
// absent id is a no-op.
func (t *AvailabilityTracker) Release(day string, period, teacherID, roomID int) {
	key := slotKey{Day: day, Period: period}
	if set := t.teachers[key]; set != nil {
		delete(set, teacherID)
	}
	if set := t.rooms[key]; set != nil {
		delete(set, roomID)
	}
}

// Reset clears all commitments.
func (t *AvailabilityTracker) Reset() {
	t.teachers = make(map[slotKey]map[int]struct{})
	t.rooms = make(map[slotKey]map[int]struct{})
}

// Rebuild reconstructs the tracker from a full store scan.
func (t *AvailabilityTracker) Rebuild(entries []models.SlotEntry) {
	t.Reset()
	for _, e := range entries {
		t.Commit(e.Day, e.Period, e.TeacherID, e.RoomID)
	}
}

// BusyTeachers returns a copy of the busy teacher set at the slot.
func (t *AvailabilityTracker) BusyTeachers(day string, period int) map[int]struct{} {
	set := t.teachers[slotKey{Day: day, Period: period}]
	result := make(map[int]struct{}, len(set))
	for id := range set {
		result[id] = struct{}{}
	}
	return result
}

// BusyRooms returns a copy of the busy room set at the slot.
func (t *AvailabilityTracker) BusyRooms(day string, period int) map[int]struct{} {
	set := t.rooms[slotKey{Day: day, Period: period}]
	result := make(map[int]struct{}, len(set))
	for id := range set {
		result[id] = struct{}{}
	}
	return result
}
