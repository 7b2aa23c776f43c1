package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

func TestAvailabilityTrackerCommitAndFree(t *testing.T) {
	tracker := NewAvailabilityTracker()

	assert.True(t, tracker.IsTeacherFree("Sun", 1, 7))
	assert.True(t, tracker.IsRoomFree("Sun", 1, 3))

	tracker.Commit("Sun", 1, 7, 3)

	assert.False(t, tracker.IsTeacherFree("Sun", 1, 7))
	assert.False(t, tracker.IsRoomFree("Sun", 1, 3))

	// Other slots and other ids stay free.
	assert.True(t, tracker.IsTeacherFree("Sun", 2, 7))
	assert.True(t, tracker.IsTeacherFree("Mon", 1, 7))
	assert.True(t, tracker.IsTeacherFree("Sun", 1, 8))
	assert.True(t, tracker.IsRoomFree("Sun", 1, 4))
}

func TestAvailabilityTrackerCommitIdempotent(t *testing.T) {
	tracker := NewAvailabilityTracker()

	tracker.Commit("Mon", 2, 1, 1)
	tracker.Commit("Mon", 2, 1, 1)

	assert.False(t, tracker.IsTeacherFree("Mon", 2, 1))
	tracker.Release("Mon", 2, 1, 1)
	assert.True(t, tracker.IsTeacherFree("Mon", 2, 1))
	assert.True(t, tracker.IsRoomFree("Mon", 2, 1))
}

func TestAvailabilityTrackerReleaseAbsentIsNoop(t *testing.T) {
	tracker := NewAvailabilityTracker()
	tracker.Release("Tue", 3, 99, 99)
	assert.True(t, tracker.IsTeacherFree("Tue", 3, 99))
}

func TestAvailabilityTrackerRebuild(t *testing.T) {
	tracker := NewAvailabilityTracker()
	tracker.Commit("Sun", 1, 50, 60)

	entries := []models.SlotEntry{
		entry("11a", "Mon", 2, 1, 7, 3),
		entry("11b", "Mon", 2, 2, 8, 4),
	}
	tracker.Rebuild(entries)

	// Pre-rebuild commitments are gone.
	assert.True(t, tracker.IsTeacherFree("Sun", 1, 50))
	assert.False(t, tracker.IsTeacherFree("Mon", 2, 7))
	assert.False(t, tracker.IsTeacherFree("Mon", 2, 8))
	assert.False(t, tracker.IsRoomFree("Mon", 2, 3))
	assert.False(t, tracker.IsRoomFree("Mon", 2, 4))

	busy := tracker.BusyTeachers("Mon", 2)
	assert.Len(t, busy, 2)
	assert.Contains(t, busy, 7)
	assert.Contains(t, busy, 8)
}

func TestAvailabilityTrackerBusyCopiesAreDetached(t *testing.T) {
	tracker := NewAvailabilityTracker()
	tracker.Commit("Wed", 4, 1, 2)

	busy := tracker.BusyRooms("Wed", 4)
	delete(busy, 2)
	assert.False(t, tracker.IsRoomFree("Wed", 4, 2))
}
