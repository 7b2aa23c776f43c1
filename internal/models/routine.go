package models

// Days is the working week, Sunday through Thursday.
var Days = []string{"Sun", "Mon", "Tue", "Wed", "Thu"}

// Periods are the teaching slots in one day.
var Periods = []int{1, 2, 3, 4, 5, 6}

// BreakAfterPeriod marks the cosmetic 30-minute break. Rendering only; it
// never blocks scheduling.
const BreakAfterPeriod = 3

// ValidDay reports whether day belongs to the working week.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// ValidPeriod reports whether period is inside the fixed period set.
func ValidPeriod(period int) bool {
	return period >= 1 && period <= len(Periods)
}

// SlotKey uniquely addresses a slot entry.
type SlotKey struct {
	SectionCode string
	Day         string
	Period      int
}

// SlotEntry is the atomic scheduling fact: one section occupying one
// (day, period) with a subject, teacher and room.
type SlotEntry struct {
	SectionCode string `db:"section_code" json:"section_code"`
	Day         string `db:"day" json:"day"`
	Period      int    `db:"period" json:"period"`
	SubjectID   int    `db:"subject_id" json:"subject_id"`
	TeacherID   int    `db:"teacher_id" json:"teacher_id"`
	RoomID      int    `db:"room_id" json:"room_id"`
	ShiftLogID  int    `db:"shift_log_id" json:"shift_log_id"`
}

// Key returns the entry's unique (section, day, period) address.
func (e SlotEntry) Key() SlotKey {
	return SlotKey{SectionCode: e.SectionCode, Day: e.Day, Period: e.Period}
}

// ViolationKind enumerates validator findings.
type ViolationKind string

const (
	ViolationTeacherDoubleBooking ViolationKind = "teacher_double_booking"
	ViolationRoomDoubleBooking    ViolationKind = "room_double_booking"
	ViolationTimeslotCollision    ViolationKind = "timeslot_collision"
	ViolationInvalidDay           ViolationKind = "invalid_day"
	ViolationInvalidPeriod        ViolationKind = "invalid_period"
)

// Violation is one diagnostic finding from the validator. Validation never
// mutates or drops entries.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	Day        string        `json:"day"`
	Period     int           `json:"period"`
	ResourceID int           `json:"resource_id,omitempty"`
	Sections   []string      `json:"sections"`
	Message    string        `json:"message"`
}

// GenerationResult carries a generated section routine plus per-subject
// warnings for subjects that could not be staffed. RoomID and ReservedPeriods
// describe the section's exclusive room claim, which covers unstaffed periods
// the entries alone cannot show.
type GenerationResult struct {
	SectionCode     string      `json:"section_code"`
	Entries         []SlotEntry `json:"entries"`
	Warnings        []string    `json:"warnings,omitempty"`
	RoomID          int         `json:"room_id"`
	ReservedPeriods []int       `json:"reserved_periods,omitempty"`
}
