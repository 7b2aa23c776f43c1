package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/response"
)

type routineManager interface {
	CreateRoutine(ctx context.Context, req dto.GenerateRoutineRequest) (dto.GenerateRoutineResponse, error)
	RescheduleSubject(ctx context.Context, req dto.RescheduleRequest) (dto.RescheduleResponse, error)
	UpsertSlot(ctx context.Context, req dto.UpsertSlotRequest) (dto.MutationResponse, error)
	MoveSlot(ctx context.Context, req dto.MoveSlotRequest) (dto.MutationResponse, error)
	SwapSlots(ctx context.Context, req dto.SwapSlotsRequest) (dto.MutationResponse, error)
	RemoveSlot(ctx context.Context, req dto.RemoveSlotRequest) (dto.MutationResponse, error)
	ShowRoutine(ctx context.Context, sectionCode string) (dto.RoutineView, error)
	SaveRoutine(ctx context.Context) dto.SaveRoutineResponse
	LoadPersisted(ctx context.Context) (int, error)
	Validate() []models.Violation
	Reset(ctx context.Context)
	Catalog(ctx context.Context) (*models.Catalog, error)
}

type routineExporter interface {
	CSV(entries []models.SlotEntry) ([]byte, error)
	PDF(entries []models.SlotEntry, catalog *models.Catalog, title string) ([]byte, error)
	Markdown(entries []models.SlotEntry, catalog *models.Catalog) string
}

// RoutineHandler exposes routine generation, mutation and export endpoints.
type RoutineHandler struct {
	service  routineManager
	exporter routineExporter
	metrics  *service.MetricsService
}

// NewRoutineHandler constructs the handler. metrics may be nil.
func NewRoutineHandler(svc *service.RoutineService, exporter *service.ExportService, metrics *service.MetricsService) *RoutineHandler {
	return &RoutineHandler{service: svc, exporter: exporter, metrics: metrics}
}

// Generate godoc
// @Summary Generate routines for a section or class
// @Tags Routine
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRoutineRequest true "Generate routine payload"
// @Success 200 {object} response.Envelope
// @Router /routine/generate [post]
func (h *RoutineHandler) Generate(c *gin.Context) {
	var req dto.GenerateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.CreateRoutine(c.Request.Context(), req)
	h.metrics.RecordGeneration(err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordViolations(len(result.Violations))
	response.JSON(c, http.StatusOK, result)
}

// Reschedule godoc
// @Summary Move a subject's classes off a day
// @Tags Routine
// @Accept json
// @Produce json
// @Param payload body dto.RescheduleRequest true "Reschedule payload"
// @Success 200 {object} response.Envelope
// @Router /routine/reschedule [post]
func (h *RoutineHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}
	result, err := h.service.RescheduleSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordReschedule()
	h.metrics.RecordViolations(len(result.Violations))
	response.JSON(c, http.StatusOK, result)
}

// UpsertSlot godoc
// @Summary Insert or overwrite one slot entry
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.UpsertSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /routine/slots [put]
func (h *RoutineHandler) UpsertSlot(c *gin.Context) {
	var req dto.UpsertSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	result, err := h.service.UpsertSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordMutation("upsert")
	response.JSON(c, http.StatusOK, result)
}

// MoveSlot godoc
// @Summary Relocate one slot entry to another day and period
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.MoveSlotRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Router /routine/slots/move [post]
func (h *RoutineHandler) MoveSlot(c *gin.Context) {
	var req dto.MoveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid move payload"))
		return
	}
	result, err := h.service.MoveSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordMutation("move")
	response.JSON(c, http.StatusOK, result)
}

// SwapSlots godoc
// @Summary Exchange the payloads of two slot entries
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.SwapSlotsRequest true "Swap payload"
// @Success 200 {object} response.Envelope
// @Router /routine/slots/swap [post]
func (h *RoutineHandler) SwapSlots(c *gin.Context) {
	var req dto.SwapSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid swap payload"))
		return
	}
	result, err := h.service.SwapSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordMutation("swap")
	response.JSON(c, http.StatusOK, result)
}

// RemoveSlot godoc
// @Summary Delete one slot entry
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.RemoveSlotRequest true "Remove payload"
// @Success 200 {object} response.Envelope
// @Router /routine/slots/remove [post]
func (h *RoutineHandler) RemoveSlot(c *gin.Context) {
	var req dto.RemoveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid remove payload"))
		return
	}
	result, err := h.service.RemoveSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordMutation("remove")
	response.JSON(c, http.StatusOK, result)
}

// Show godoc
// @Summary Show the current routine
// @Tags Routine
// @Produce json
// @Param section query string false "Section code"
// @Success 200 {object} response.Envelope
// @Router /routine [get]
func (h *RoutineHandler) Show(c *gin.Context) {
	view, err := h.service.ShowRoutine(c.Request.Context(), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Validate godoc
// @Summary Validate the current routine
// @Tags Routine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routine/validate [get]
func (h *RoutineHandler) Validate(c *gin.Context) {
	violations := h.service.Validate()
	h.metrics.RecordViolations(len(violations))
	response.JSON(c, http.StatusOK, gin.H{"violations": violations, "valid": len(violations) == 0})
}

// Save godoc
// @Summary Persist the current routine to the database
// @Tags Routine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routine/save [post]
func (h *RoutineHandler) Save(c *gin.Context) {
	result := h.service.SaveRoutine(c.Request.Context())
	response.JSON(c, http.StatusOK, result)
}

// Load godoc
// @Summary Replace the session routine with the persisted one
// @Tags Routine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routine/load [post]
func (h *RoutineHandler) Load(c *gin.Context) {
	count, err := h.service.LoadPersisted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"loaded": count})
}

// Reset godoc
// @Summary Clear the session routine
// @Tags Routine
// @Success 204
// @Router /routine [delete]
func (h *RoutineHandler) Reset(c *gin.Context) {
	h.service.Reset(c.Request.Context())
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export the routine as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string
// @Router /routine/export/csv [get]
func (h *RoutineHandler) ExportCSV(c *gin.Context) {
	view, err := h.service.ShowRoutine(c.Request.Context(), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	raw, err := h.exporter.CSV(view.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="routine.csv"`)
	c.Data(http.StatusOK, "text/csv", raw)
}

// ExportPDF godoc
// @Summary Export the routine as PDF
// @Tags Export
// @Produce application/pdf
// @Success 200 {string} string
// @Router /routine/export/pdf [get]
func (h *RoutineHandler) ExportPDF(c *gin.Context) {
	view, err := h.service.ShowRoutine(c.Request.Context(), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	title := "Class Routine"
	if view.SectionCode != "" {
		title = "Class Routine - Section " + view.SectionCode
	}
	raw, err := h.exporter.PDF(view.Entries, catalog, title)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="routine.pdf"`)
	c.Data(http.StatusOK, "application/pdf", raw)
}

// ExportMarkdown godoc
// @Summary Export the routine as Markdown grids
// @Tags Export
// @Produce text/markdown
// @Success 200 {string} string
// @Router /routine/export/markdown [get]
func (h *RoutineHandler) ExportMarkdown(c *gin.Context) {
	view, err := h.service.ShowRoutine(c.Request.Context(), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(h.exporter.Markdown(view.Entries, catalog)))
}
