package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/export"
)

// Persist-format column order, matching the routine_slots table.
var slotColumns = []string{"section_code", "day", "period", "subject_id", "teacher_id", "room_id", "shift_log_id"}

// ExportService renders routine entries into CSV, PDF and Markdown views.
// The CSV persist format round-trips ids exactly; the display formats swap
// ids for catalog names.
type ExportService struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewExportService wires the exporters.
func NewExportService() *ExportService {
	return &ExportService{
		csv: export.NewCSVExporter(),
		pdf: export.NewPDFExporter(),
	}
}

// CSV renders the raw persist format: one row per entry, ids only.
func (s *ExportService) CSV(entries []models.SlotEntry) ([]byte, error) {
	data := export.Dataset{Headers: slotColumns}
	for _, e := range sortedEntries(entries) {
		data.Rows = append(data.Rows, map[string]string{
			"section_code": e.SectionCode,
			"day":          e.Day,
			"period":       strconv.Itoa(e.Period),
			"subject_id":   strconv.Itoa(e.SubjectID),
			"teacher_id":   strconv.Itoa(e.TeacherID),
			"room_id":      strconv.Itoa(e.RoomID),
			"shift_log_id": strconv.Itoa(e.ShiftLogID),
		})
	}
	return s.csv.Render(data)
}

// ParseCSV loads entries back from the persist format.
func (s *ExportService) ParseCSV(raw []byte) ([]models.SlotEntry, error) {
	data, err := s.csv.Parse(raw)
	if err != nil {
		return nil, err
	}
	var entries []models.SlotEntry
	for i, row := range data.Rows {
		entry := models.SlotEntry{
			SectionCode: row["section_code"],
			Day:         row["day"],
		}
		var convErr error
		entry.Period, convErr = atoiField(row, "period", convErr)
		entry.SubjectID, convErr = atoiField(row, "subject_id", convErr)
		entry.TeacherID, convErr = atoiField(row, "teacher_id", convErr)
		entry.RoomID, convErr = atoiField(row, "room_id", convErr)
		entry.ShiftLogID, convErr = atoiField(row, "shift_log_id", convErr)
		if convErr != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, convErr)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func atoiField(row map[string]string, key string, prev error) (int, error) {
	if prev != nil {
		return 0, prev
	}
	value := strings.TrimSpace(row[key])
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return n, nil
}

// PDF renders a display table with catalog names resolved.
func (s *ExportService) PDF(entries []models.SlotEntry, catalog *models.Catalog, title string) ([]byte, error) {
	data := export.Dataset{Headers: []string{"Section", "Day", "Period", "Subject", "Teacher", "Room"}}
	for _, e := range sortedEntries(entries) {
		data.Rows = append(data.Rows, map[string]string{
			"Section": e.SectionCode,
			"Day":     e.Day,
			"Period":  strconv.Itoa(e.Period),
			"Subject": subjectLabel(catalog, e.SubjectID),
			"Teacher": teacherLabel(catalog, e.TeacherID),
			"Room":    roomLabel(catalog, e.RoomID),
		})
	}
	return s.pdf.Render(data, title)
}

// Markdown renders one grid table per section: days as rows, periods as
// columns, with a Break column after the third period.
func (s *ExportService) Markdown(entries []models.SlotEntry, catalog *models.Catalog) string {
	bySection := make(map[string]map[string]map[int]models.SlotEntry)
	var sectionCodes []string
	for _, e := range entries {
		if bySection[e.SectionCode] == nil {
			bySection[e.SectionCode] = make(map[string]map[int]models.SlotEntry)
			sectionCodes = append(sectionCodes, e.SectionCode)
		}
		if bySection[e.SectionCode][e.Day] == nil {
			bySection[e.SectionCode][e.Day] = make(map[int]models.SlotEntry)
		}
		bySection[e.SectionCode][e.Day][e.Period] = e
	}
	sort.Strings(sectionCodes)

	var b strings.Builder
	for _, code := range sectionCodes {
		fmt.Fprintf(&b, "## Section %s\n\n", strings.ToUpper(code))
		b.WriteString("| Day |")
		for _, p := range models.Periods {
			fmt.Fprintf(&b, " Period %d |", p)
			if p == models.BreakAfterPeriod {
				b.WriteString(" Break |")
			}
		}
		b.WriteString("\n|-----|")
		for _, p := range models.Periods {
			b.WriteString("----------|")
			if p == models.BreakAfterPeriod {
				b.WriteString("-------|")
			}
		}
		b.WriteString("\n")

		for _, day := range models.Days {
			fmt.Fprintf(&b, "| %s |", day)
			for _, p := range models.Periods {
				if e, ok := bySection[code][day][p]; ok {
					fmt.Fprintf(&b, " %s (%s) |", subjectLabel(catalog, e.SubjectID), teacherLabel(catalog, e.TeacherID))
				} else {
					b.WriteString(" - |")
				}
				if p == models.BreakAfterPeriod {
					b.WriteString(" 30 min |")
				}
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func subjectLabel(catalog *models.Catalog, id int) string {
	if catalog != nil {
		if s, ok := catalog.SubjectByID(id); ok {
			return s.Name
		}
	}
	return fmt.Sprintf("subject#%d", id)
}

func teacherLabel(catalog *models.Catalog, id int) string {
	if catalog != nil {
		if t, ok := catalog.TeacherByID(id); ok {
			return t.Name
		}
	}
	return fmt.Sprintf("teacher#%d", id)
}

func roomLabel(catalog *models.Catalog, id int) string {
	if catalog != nil {
		if r, ok := catalog.RoomByID(id); ok {
			return strconv.Itoa(r.RoomNo)
		}
	}
	return fmt.Sprintf("room#%d", id)
}

// sortedEntries orders entries by section, week day, then period for stable
// export output.
func sortedEntries(entries []models.SlotEntry) []models.SlotEntry {
	dayIndex := make(map[string]int, len(models.Days))
	for i, d := range models.Days {
		dayIndex[d] = i
	}
	result := make([]models.SlotEntry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.SectionCode != b.SectionCode {
			return a.SectionCode < b.SectionCode
		}
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
		return a.Period < b.Period
	})
	return result
}
