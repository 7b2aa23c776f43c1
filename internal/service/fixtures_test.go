package service

import (
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
)

// testCatalog mirrors the development seed: two science sections in class 11,
// one in class 12, three subjects, a professor and a lecturer per department.
func testCatalog() *models.Catalog {
	return &models.Catalog{
		Classes: []models.Class{
			{ID: 11, Name: "Class 11", Code: "c11"},
			{ID: 12, Name: "Class 12", Code: "c12"},
		},
		Sections: []models.Section{
			{ID: 1, ClassID: 11, Name: "Section A", Code: "11a", GroupCode: "hsc-sci"},
			{ID: 2, ClassID: 11, Name: "Section B", Code: "11b", GroupCode: "hsc-sci"},
			{ID: 3, ClassID: 12, Name: "Section A", Code: "12a", GroupCode: "hsc-sci"},
		},
		Subjects: []models.Subject{
			{ID: 1, Name: "Physics", Code: "phy", Department: "Physics"},
			{ID: 2, Name: "Chemistry", Code: "chem", Department: "Chemistry"},
			{ID: 3, Name: "Mathematics", Code: "math", Department: "Mathematics"},
		},
		SubjectGroups: []models.SubjectGroup{
			{ID: 1, Name: "HSC Science", GroupCode: "hsc-sci", SubjectIDs: []int{1, 2, 3}},
		},
		Teachers: []models.Teacher{
			{ID: 1, Name: "Dr. Rahim Uddin", Code: "t-phy-1", Department: "Physics", Designation: "c_professor"},
			{ID: 2, Name: "Selina Akter", Code: "t-phy-2", Department: "Physics", Designation: "a_lecturer"},
			{ID: 3, Name: "Dr. Kamal Hossain", Code: "t-chem-1", Department: "Chemistry", Designation: "c_professor"},
			{ID: 4, Name: "Nusrat Jahan", Code: "t-chem-2", Department: "Chemistry", Designation: "a_lecturer"},
			{ID: 5, Name: "Dr. Abdul Karim", Code: "t-math-1", Department: "Mathematics", Designation: "c_professor"},
			{ID: 6, Name: "Shamima Nasrin", Code: "t-math-2", Department: "Mathematics", Designation: "a_lecturer"},
		},
		Rooms: []models.Room{
			{ID: 1, RoomNo: 101, Rows: 5, Columns: 4, BenchCapacity: 3},
			{ID: 2, RoomNo: 102, Rows: 5, Columns: 4, BenchCapacity: 3},
			{ID: 3, RoomNo: 103, Rows: 6, Columns: 4, BenchCapacity: 2},
		},
		Shifts: []models.Shift{
			{ID: 1, Weekdays: []string{"Fri", "Sat"}, Start: "09:00", End: "15:00"},
		},
	}
}

func entry(section, day string, period, subjectID, teacherID, roomID int) models.SlotEntry {
	return models.SlotEntry{
		SectionCode: section,
		Day:         day,
		Period:      period,
		SubjectID:   subjectID,
		TeacherID:   teacherID,
		RoomID:      roomID,
		ShiftLogID:  1,
	}
}

// weeklyEntries lays the three fixture subjects into periods 1..3 across the
// full week for one section, the same shape the generator produces.
func weeklyEntries(section string, roomID int, teacherIDs [3]int) []models.SlotEntry {
	var entries []models.SlotEntry
	for _, day := range models.Days {
		for i := 0; i < 3; i++ {
			entries = append(entries, entry(section, day, i+1, i+1, teacherIDs[i], roomID))
		}
	}
	return entries
}
