package models

import (
	"sort"
	"strings"
	"time"
)

// Class represents an academic class level (e.g. Class 11, Class 12).
type Class struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}

// Section is a named group of students inside a class following one subject group.
type Section struct {
	ID        int    `db:"id" json:"id"`
	ClassID   int    `db:"classes_id" json:"class_id"`
	Name      string `db:"name" json:"name"`
	Code      string `db:"code" json:"code"`
	GroupCode string `db:"grp_code" json:"grp_code"`
}

// Subject represents an academic subject owned by a department.
type Subject struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Code       string `db:"code" json:"code"`
	Department string `db:"department" json:"department"`
}

// SubjectGroup is an ordered bundle of subjects taught to one stream.
type SubjectGroup struct {
	ID         int    `db:"grp_id" json:"id"`
	Name       string `db:"name" json:"name"`
	GroupCode  string `db:"grp_code" json:"grp_code"`
	SubjectIDs []int  `db:"-" json:"has_subjects"`
}

// Teacher represents an instructor record.
type Teacher struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Code        string `db:"code" json:"code"`
	Department  string `db:"department" json:"department"`
	Designation string `db:"designation" json:"designation"`
}

// Room is a physical classroom; capacity derives from its bench layout.
type Room struct {
	ID            int `db:"id" json:"id"`
	RoomNo        int `db:"room_no" json:"room_no"`
	Rows          int `db:"number_of_row" json:"number_of_row"`
	Columns       int `db:"number_of_column" json:"number_of_column"`
	BenchCapacity int `db:"each_brench_capacity" json:"each_brench_capacity"`
}

// TotalCapacity returns the seat count for the room.
func (r Room) TotalCapacity() int {
	return r.Rows * r.Columns * r.BenchCapacity
}

// Shift describes a working-time window applicable on a set of weekdays.
type Shift struct {
	ID       int      `db:"id" json:"id"`
	Weekdays []string `db:"-" json:"weekends"`
	Start    string   `db:"start" json:"start"`
	End      string   `db:"end" json:"end"`
}

// Duration returns the shift length, or zero when the window cannot be parsed.
func (s Shift) Duration() time.Duration {
	const layout = "15:04"
	start, err := time.Parse(layout, s.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(layout, s.End)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// Catalog aggregates the read-only reference tables loaded once per session.
type Catalog struct {
	Classes       []Class
	Sections      []Section
	Subjects      []Subject
	SubjectGroups []SubjectGroup
	Teachers      []Teacher
	Rooms         []Room
	Shifts        []Shift
}

// SectionByCode looks a section up by its display code, case-insensitively.
func (c *Catalog) SectionByCode(code string) (Section, bool) {
	for _, s := range c.Sections {
		if strings.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return Section{}, false
}

// ClassByName looks a class up by name, case-insensitively.
func (c *Catalog) ClassByName(name string) (Class, bool) {
	for _, cl := range c.Classes {
		if strings.EqualFold(cl.Name, name) {
			return cl, true
		}
	}
	return Class{}, false
}

// SectionsByClass returns the sections belonging to a class, optionally
// narrowed to one subject group.
func (c *Catalog) SectionsByClass(classID int, groupCode string) []Section {
	var result []Section
	for _, s := range c.Sections {
		if s.ClassID != classID {
			continue
		}
		if groupCode != "" && s.GroupCode != groupCode {
			continue
		}
		result = append(result, s)
	}
	return result
}

// SubjectGroupByCode resolves a subject group by its group code.
func (c *Catalog) SubjectGroupByCode(code string) (SubjectGroup, bool) {
	for _, g := range c.SubjectGroups {
		if g.GroupCode == code {
			return g, true
		}
	}
	return SubjectGroup{}, false
}

// SubjectsByIDs returns the named subjects sorted by id ascending. The sort
// drives deterministic period assignment in the generator.
func (c *Catalog) SubjectsByIDs(ids []int) []Subject {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var result []Subject
	for _, s := range c.Subjects {
		if _, ok := want[s.ID]; ok {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SubjectByID resolves a subject by id.
func (c *Catalog) SubjectByID(id int) (Subject, bool) {
	for _, s := range c.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// TeacherByID resolves a teacher by id.
func (c *Catalog) TeacherByID(id int) (Teacher, bool) {
	for _, t := range c.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return Teacher{}, false
}

// RoomByID resolves a room by id.
func (c *Catalog) RoomByID(id int) (Room, bool) {
	for _, r := range c.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// TeachersByDepartment returns department teachers ordered by designation.
// preferSenior reverses the sort so senior designations come first; ties fall
// back to id ascending to keep the pick deterministic.
func (c *Catalog) TeachersByDepartment(department string, preferSenior bool) []Teacher {
	var result []Teacher
	for _, t := range c.Teachers {
		if t.Department == department {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Designation != result[j].Designation {
			if preferSenior {
				return result[i].Designation > result[j].Designation
			}
			return result[i].Designation < result[j].Designation
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// RoomsByNumber returns all rooms ordered by room number ascending.
func (c *Catalog) RoomsByNumber() []Room {
	result := make([]Room, len(c.Rooms))
	copy(result, c.Rooms)
	sort.Slice(result, func(i, j int) bool { return result[i].RoomNo < result[j].RoomNo })
	return result
}
