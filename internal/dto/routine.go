package dto

import "github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"

// GenerateRoutineRequest targets either a single section or a class (with an
// optional subject-group narrowing).
type GenerateRoutineRequest struct {
	SectionCode string `json:"sectionCode"`
	ClassName   string `json:"className"`
	GroupCode   string `json:"groupCode"`
}

// GenerateRoutineResponse reports per-section outcomes and the validator
// findings over the whole store after the operation.
type GenerateRoutineResponse struct {
	Results    []models.GenerationResult `json:"results"`
	Violations []models.Violation        `json:"violations"`
}

// RescheduleRequest moves a subject's classes off one day.
type RescheduleRequest struct {
	SectionCode string `json:"sectionCode"`
	Subject     string `json:"subject" binding:"required"`
	AvoidDay    string `json:"avoidDay" binding:"required"`
}

// RescheduleResponse summarises per-section outcomes.
type RescheduleResponse struct {
	Messages   []string           `json:"messages"`
	Violations []models.Violation `json:"violations"`
}

// UpsertSlotRequest inserts or overwrites one slot entry.
type UpsertSlotRequest struct {
	SectionCode string `json:"sectionCode" validate:"required"`
	Day         string `json:"day" validate:"required"`
	Period      int    `json:"period" validate:"required,min=1,max=6"`
	SubjectID   int    `json:"subjectId" validate:"required"`
	TeacherID   int    `json:"teacherId" validate:"required"`
	RoomID      int    `json:"roomId" validate:"required"`
	ShiftLogID  int    `json:"shiftLogId"`
}

// MoveSlotRequest relocates an existing entry to another (day, period).
type MoveSlotRequest struct {
	SectionCode string `json:"sectionCode" validate:"required"`
	FromDay     string `json:"fromDay" validate:"required"`
	FromPeriod  int    `json:"fromPeriod" validate:"required,min=1,max=6"`
	ToDay       string `json:"toDay" validate:"required"`
	ToPeriod    int    `json:"toPeriod" validate:"required,min=1,max=6"`
}

// SwapSlotsRequest exchanges the payloads of two existing entries.
type SwapSlotsRequest struct {
	SectionA string `json:"sectionA" validate:"required"`
	DayA     string `json:"dayA" validate:"required"`
	PeriodA  int    `json:"periodA" validate:"required,min=1,max=6"`
	SectionB string `json:"sectionB" validate:"required"`
	DayB     string `json:"dayB" validate:"required"`
	PeriodB  int    `json:"periodB" validate:"required,min=1,max=6"`
}

// RemoveSlotRequest deletes the entry at a key; absent keys are a no-op.
type RemoveSlotRequest struct {
	SectionCode string `json:"sectionCode" validate:"required"`
	Day         string `json:"day" validate:"required"`
	Period      int    `json:"period" validate:"required,min=1,max=6"`
}

// MutationResponse is the common reply for direct slot mutations.
type MutationResponse struct {
	Entries    []models.SlotEntry `json:"entries"`
	Violations []models.Violation `json:"violations"`
}

// RoutineView is the read-only listing of the store.
type RoutineView struct {
	SectionCode string             `json:"section_code,omitempty"`
	Entries     []models.SlotEntry `json:"entries"`
}

// SaveRoutineResponse carries the persistence status string. Persistence
// failures surface here, never as a request failure.
type SaveRoutineResponse struct {
	Status string `json:"status"`
	Saved  int    `json:"saved"`
}

// Intent names produced by the resolver and dispatched by the routine service.
const (
	IntentCreateRoutine     = "create_routine"
	IntentRegenerateRoutine = "regenerate_routine"
	IntentReschedule        = "reschedule"
	IntentShowRoutine       = "show_routine"
	IntentSaveRoutine       = "save_routine"
	IntentUnknown           = "unknown"
)

// Command is a parsed user intent produced by the intent resolver.
type Command struct {
	Intent      string `json:"intent"`
	ClassName   string `json:"class_name,omitempty"`
	SectionCode string `json:"section_code,omitempty"`
	GroupCode   string `json:"grp_code,omitempty"`
	Subject     string `json:"subject,omitempty"`
	AvoidDay    string `json:"avoid_day,omitempty"`
}

// CommandRequest wraps a free-text prompt for the command endpoint.
type CommandRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// CommandResponse returns the resolved command and a human-readable reply.
type CommandResponse struct {
	Command Command `json:"command"`
	Reply   string  `json:"reply"`
}

// LoginRequest authenticates the admin account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
