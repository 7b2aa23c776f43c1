package service

import (
	"fmt"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

// RoutineStore is the canonical in-memory collection of slot entries.
// Insertion order is preserved for deterministic output. Upsert, Move, Swap
// and Remove are the only mutation paths.
type RoutineStore struct {
	entries []models.SlotEntry
}

// NewRoutineStore returns an empty store.
func NewRoutineStore() *RoutineStore {
	return &RoutineStore{}
}

// Load replaces the store contents. Duplicate keys in the input collapse,
// last occurrence wins, so a reloaded store is always key-unique.
func (s *RoutineStore) Load(entries []models.SlotEntry) {
	s.entries = s.entries[:0]
	for _, e := range entries {
		s.Upsert(e)
	}
}

// Entries returns a copy of all entries in insertion order.
func (s *RoutineStore) Entries() []models.SlotEntry {
	result := make([]models.SlotEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// BySection returns the entries for one section, case-sensitively by code.
func (s *RoutineStore) BySection(sectionCode string) []models.SlotEntry {
	var result []models.SlotEntry
	for _, e := range s.entries {
		if e.SectionCode == sectionCode {
			result = append(result, e)
		}
	}
	return result
}

// Len reports the entry count.
func (s *RoutineStore) Len() int {
	return len(s.entries)
}

// Upsert overwrites the entry at the key in place, or appends a new one. It
// never checks teacher or room conflicts; the validator flags those.
func (s *RoutineStore) Upsert(entry models.SlotEntry) {
	if idx := s.find(entry.Key()); idx >= 0 {
		s.entries[idx] = entry
		return
	}
	s.entries = append(s.entries, entry)
}

// Remove deletes the entry at the key if present; absent keys are a no-op.
// It reports whether an entry was removed.
func (s *RoutineStore) Remove(sectionCode, day string, period int) bool {
	idx := s.find(models.SlotKey{SectionCode: sectionCode, Day: day, Period: period})
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true
}

// Move relocates the entry at the source key to (toDay, toPeriod). A missing
// source fails with SLOT_NOT_FOUND. Moving onto an occupied slot of the same
// section is permitted, like a transient upsert conflict, and surfaces as a
// timeslot collision in validation.
func (s *RoutineStore) Move(sectionCode, fromDay string, fromPeriod int, toDay string, toPeriod int) error {
	idx := s.find(models.SlotKey{SectionCode: sectionCode, Day: fromDay, Period: fromPeriod})
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrSlotNotFound,
			fmt.Sprintf("no slot found for section=%s day=%s period=%d", sectionCode, fromDay, fromPeriod))
	}
	s.entries[idx].Day = toDay
	s.entries[idx].Period = toPeriod
	return nil
}

// Swap exchanges the subject/teacher/room/shift payloads of the two addressed
// entries while keeping their keys fixed. Either side missing fails with
// SLOT_NOT_FOUND.
func (s *RoutineStore) Swap(sectionA, dayA string, periodA int, sectionB, dayB string, periodB int) error {
	idxA := s.find(models.SlotKey{SectionCode: sectionA, Day: dayA, Period: periodA})
	idxB := s.find(models.SlotKey{SectionCode: sectionB, Day: dayB, Period: periodB})
	if idxA < 0 || idxB < 0 {
		return appErrors.Clone(appErrors.ErrSlotNotFound, "one or both slots not found for swap")
	}

	a, b := &s.entries[idxA], &s.entries[idxB]
	a.SubjectID, b.SubjectID = b.SubjectID, a.SubjectID
	a.TeacherID, b.TeacherID = b.TeacherID, a.TeacherID
	a.RoomID, b.RoomID = b.RoomID, a.RoomID
	a.ShiftLogID, b.ShiftLogID = b.ShiftLogID, a.ShiftLogID
	return nil
}

// RemoveSection drops every entry for a section and returns the removed set.
func (s *RoutineStore) RemoveSection(sectionCode string) []models.SlotEntry {
	var removed, kept []models.SlotEntry
	for _, e := range s.entries {
		if e.SectionCode == sectionCode {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Reset clears the store.
func (s *RoutineStore) Reset() {
	s.entries = nil
}

func (s *RoutineStore) find(key models.SlotKey) int {
	for i, e := range s.entries {
		if e.Key() == key {
			return i
		}
	}
	return -1
}
