package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

// CatalogProvider loads the read-only reference tables.
type CatalogProvider interface {
	LoadCatalog(ctx context.Context) (*models.Catalog, error)
}

// RoutinePersistence stores and restores the full slot-entry set.
type RoutinePersistence interface {
	ReplaceAll(ctx context.Context, entries []models.SlotEntry) error
	ListAll(ctx context.Context) ([]models.SlotEntry, error)
}

// RoutineViewCache caches rendered routine views between mutations.
type RoutineViewCache interface {
	GetView(ctx context.Context, key string) ([]models.SlotEntry, error)
	SetView(ctx context.Context, key string, entries []models.SlotEntry) error
	InvalidateViews(ctx context.Context) error
}

// roomClaim records a section's exclusive room reservation. Entries alone
// cannot encode it when a subject went unstaffed, so tracker rebuilds layer
// the claims back on top of the store scan.
type roomClaim struct {
	RoomID  int
	Periods []int
}

// RoutineService owns one editing session: the catalog, the store, and the
// availability tracker, kept consistent under a single mutex. Every mutation
// revalidates the whole store and invalidates cached views; persistence only
// happens on explicit save unless persistOnChange is set.
type RoutineService struct {
	mu sync.Mutex

	catalog    *models.Catalog
	store      *RoutineStore
	tracker    *AvailabilityTracker
	roomClaims map[string]roomClaim

	generator   *RoutineGenerator
	rescheduler *Rescheduler
	validator   *RoutineValidator

	catalogProvider CatalogProvider
	persistence     RoutinePersistence
	viewCache       RoutineViewCache

	structValidator *validator.Validate
	logger          *zap.Logger
	persistOnChange bool
}

// NewRoutineService wires a session service. persistence and viewCache may be
// nil; save and cached reads degrade gracefully without them.
func NewRoutineService(
	catalogProvider CatalogProvider,
	persistence RoutinePersistence,
	viewCache RoutineViewCache,
	structValidator *validator.Validate,
	logger *zap.Logger,
	persistOnChange bool,
) *RoutineService {
	if structValidator == nil {
		structValidator = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutineService{
		store:           NewRoutineStore(),
		tracker:         NewAvailabilityTracker(),
		roomClaims:      make(map[string]roomClaim),
		generator:       NewRoutineGenerator(logger),
		rescheduler:     NewRescheduler(logger),
		validator:       NewRoutineValidator(),
		catalogProvider: catalogProvider,
		persistence:     persistence,
		viewCache:       viewCache,
		structValidator: structValidator,
		logger:          logger,
		persistOnChange: persistOnChange,
	}
}

// ensureCatalog loads the catalog on first use.
func (s *RoutineService) ensureCatalog(ctx context.Context) error {
	if s.catalog != nil {
		return nil
	}
	if s.catalogProvider == nil {
		return appErrors.Clone(appErrors.ErrInternal, "no catalog provider configured")
	}
	catalog, err := s.catalogProvider.LoadCatalog(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	s.catalog = catalog
	s.logger.Info("catalog loaded",
		zap.Int("sections", len(catalog.Sections)),
		zap.Int("subjects", len(catalog.Subjects)),
		zap.Int("teachers", len(catalog.Teachers)),
		zap.Int("rooms", len(catalog.Rooms)))
	return nil
}

// Catalog returns the loaded catalog, loading it on demand.
func (s *RoutineService) Catalog(ctx context.Context) (*models.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	return s.catalog, nil
}

// CreateRoutine generates routines for the requested target: one section, or
// every section of a class optionally narrowed by subject group. Existing
// entries for a regenerated section are replaced. Sections are processed in
// catalog order against the shared tracker, so earlier sections win contested
// teachers and rooms.
func (s *RoutineService) CreateRoutine(ctx context.Context, req dto.GenerateRoutineRequest) (dto.GenerateRoutineResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.GenerateRoutineResponse
	if err := s.ensureCatalog(ctx); err != nil {
		return resp, err
	}

	sections, err := s.resolveTargetSections(req)
	if err != nil {
		return resp, err
	}

	for _, section := range sections {
		s.store.RemoveSection(section.Code)
		delete(s.roomClaims, section.Code)
	}
	s.rebuildTracker()

	for _, section := range sections {
		result, err := s.generator.Generate(section.Code, s.catalog, s.tracker)
		if err != nil {
			if len(sections) == 1 {
				return resp, err
			}
			result.Warnings = append(result.Warnings, appErrors.FromError(err).Message)
			resp.Results = append(resp.Results, result)
			continue
		}
		s.roomClaims[section.Code] = roomClaim{RoomID: result.RoomID, Periods: result.ReservedPeriods}
		for _, entry := range result.Entries {
			s.store.Upsert(entry)
		}
		resp.Results = append(resp.Results, result)
	}

	resp.Violations = s.validator.Validate(s.store.Entries())
	s.afterMutation(ctx)
	return resp, nil
}

func (s *RoutineService) resolveTargetSections(req dto.GenerateRoutineRequest) ([]models.Section, error) {
	if req.SectionCode != "" {
		section, ok := s.catalog.SectionByCode(req.SectionCode)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrSectionNotFound,
				fmt.Sprintf("section %q not found", req.SectionCode))
		}
		return []models.Section{section}, nil
	}
	if req.ClassName != "" {
		class, ok := s.catalog.ClassByName(req.ClassName)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrSectionNotFound,
				fmt.Sprintf("class %q not found", req.ClassName))
		}
		sections := s.catalog.SectionsByClass(class.ID, req.GroupCode)
		if len(sections) == 0 {
			return nil, appErrors.Clone(appErrors.ErrSectionNotFound,
				fmt.Sprintf("no sections found for class %s group %q", class.Name, req.GroupCode))
		}
		return sections, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "either sectionCode or className is required")
}

// RescheduleSubject moves every class of the named subject off the avoid day.
func (s *RoutineService) RescheduleSubject(ctx context.Context, req dto.RescheduleRequest) (dto.RescheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.RescheduleResponse
	if err := s.ensureCatalog(ctx); err != nil {
		return resp, err
	}
	if !models.ValidDay(req.AvoidDay) {
		return resp, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("unknown day %q, expected one of %v", req.AvoidDay, models.Days))
	}

	result, err := s.rescheduler.Reschedule(s.store.Entries(), s.catalog, req.Subject, req.AvoidDay, req.SectionCode)
	if err != nil {
		return resp, err
	}

	s.store.Load(result.Entries)
	resp.Messages = append(resp.Messages,
		fmt.Sprintf("moved %d %s classes off %s", result.Moved, req.Subject, req.AvoidDay))
	resp.Messages = append(resp.Messages, result.Warnings...)
	resp.Violations = s.validator.Validate(s.store.Entries())
	s.afterMutation(ctx)
	return resp, nil
}

// UpsertSlot inserts or overwrites one entry.
func (s *RoutineService) UpsertSlot(ctx context.Context, req dto.UpsertSlotRequest) (dto.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.MutationResponse
	if err := s.structValidator.Struct(req); err != nil {
		return resp, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if !models.ValidDay(req.Day) {
		return resp, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", req.Day))
	}

	s.store.Upsert(models.SlotEntry{
		SectionCode: req.SectionCode,
		Day:         req.Day,
		Period:      req.Period,
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		RoomID:      req.RoomID,
		ShiftLogID:  req.ShiftLogID,
	})
	return s.finishMutation(ctx)
}

// MoveSlot relocates one entry to a new (day, period).
func (s *RoutineService) MoveSlot(ctx context.Context, req dto.MoveSlotRequest) (dto.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.MutationResponse
	if err := s.structValidator.Struct(req); err != nil {
		return resp, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if !models.ValidDay(req.ToDay) {
		return resp, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", req.ToDay))
	}
	if err := s.store.Move(req.SectionCode, req.FromDay, req.FromPeriod, req.ToDay, req.ToPeriod); err != nil {
		return resp, err
	}
	return s.finishMutation(ctx)
}

// SwapSlots exchanges the payloads of two entries.
func (s *RoutineService) SwapSlots(ctx context.Context, req dto.SwapSlotsRequest) (dto.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.MutationResponse
	if err := s.structValidator.Struct(req); err != nil {
		return resp, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := s.store.Swap(req.SectionA, req.DayA, req.PeriodA, req.SectionB, req.DayB, req.PeriodB); err != nil {
		return resp, err
	}
	return s.finishMutation(ctx)
}

// RemoveSlot deletes one entry; a missing key is a no-op.
func (s *RoutineService) RemoveSlot(ctx context.Context, req dto.RemoveSlotRequest) (dto.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp dto.MutationResponse
	if err := s.structValidator.Struct(req); err != nil {
		return resp, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	s.store.Remove(req.SectionCode, req.Day, req.Period)
	return s.finishMutation(ctx)
}

func (s *RoutineService) finishMutation(ctx context.Context) (dto.MutationResponse, error) {
	resp := dto.MutationResponse{
		Entries:    s.store.Entries(),
		Violations: s.validator.Validate(s.store.Entries()),
	}
	s.afterMutation(ctx)
	return resp, nil
}

// rebuildTracker reconstructs the tracker from a store scan, then re-applies
// each section's room claim so periods left empty by an unstaffed subject
// stay blocked for other sections.
func (s *RoutineService) rebuildTracker() {
	s.tracker.Rebuild(s.store.Entries())
	for _, claim := range s.roomClaims {
		for _, day := range models.Days {
			for _, period := range claim.Periods {
				s.tracker.CommitRoom(day, period, claim.RoomID)
			}
		}
	}
}

// afterMutation keeps the derived state in step with the store. Cache and
// persistence failures are logged, never fatal.
func (s *RoutineService) afterMutation(ctx context.Context) {
	s.rebuildTracker()
	if s.viewCache != nil {
		if err := s.viewCache.InvalidateViews(ctx); err != nil {
			s.logger.Warn("view cache invalidation failed", zap.Error(err))
		}
	}
	if s.persistOnChange && s.persistence != nil {
		if err := s.persistence.ReplaceAll(ctx, s.store.Entries()); err != nil {
			s.logger.Warn("auto-persist failed", zap.Error(err))
		}
	}
}

// ShowRoutine returns the current entries, optionally for one section. The
// full view is served from cache when warm.
func (s *RoutineService) ShowRoutine(ctx context.Context, sectionCode string) (dto.RoutineView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sectionCode != "" {
		code := sectionCode
		if s.catalog != nil {
			if section, ok := s.catalog.SectionByCode(sectionCode); ok {
				code = section.Code
			}
		}
		return dto.RoutineView{SectionCode: code, Entries: s.store.BySection(code)}, nil
	}

	if s.viewCache != nil {
		if cached, err := s.viewCache.GetView(ctx, viewCacheKeyAll); err == nil {
			return dto.RoutineView{Entries: cached}, nil
		}
	}
	entries := s.store.Entries()
	if s.viewCache != nil {
		if err := s.viewCache.SetView(ctx, viewCacheKeyAll, entries); err != nil {
			s.logger.Warn("view cache write failed", zap.Error(err))
		}
	}
	return dto.RoutineView{Entries: entries}, nil
}

const viewCacheKeyAll = "routine:view:all"

// SaveRoutine writes the full store to persistence. Failures come back as a
// status string, not an error, so an editing session survives a flaky
// database.
func (s *RoutineService) SaveRoutine(ctx context.Context) dto.SaveRoutineResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.Entries()
	if s.persistence == nil {
		return dto.SaveRoutineResponse{Status: "persistence not configured", Saved: 0}
	}
	if err := s.persistence.ReplaceAll(ctx, entries); err != nil {
		s.logger.Error("routine save failed", zap.Error(err))
		return dto.SaveRoutineResponse{Status: fmt.Sprintf("save failed: %v", err), Saved: 0}
	}
	return dto.SaveRoutineResponse{Status: "saved", Saved: len(entries)}
}

// LoadPersisted replaces the session store with the persisted entry set.
func (s *RoutineService) LoadPersisted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistence == nil {
		return 0, appErrors.Clone(appErrors.ErrInternal, "persistence not configured")
	}
	entries, err := s.persistence.ListAll(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load persisted routine")
	}
	s.store.Load(entries)
	// Persisted entries cannot carry reservations for empty periods, so the
	// loaded session starts with entry-derived occupancy only.
	s.roomClaims = make(map[string]roomClaim)
	s.afterMutation(ctx)
	return s.store.Len(), nil
}

// Validate runs the validator over the current store.
func (s *RoutineService) Validate() []models.Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validator.Validate(s.store.Entries())
}

// Reset clears the session store and tracker.
func (s *RoutineService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
	s.tracker.Reset()
	s.roomClaims = make(map[string]roomClaim)
	if s.viewCache != nil {
		if err := s.viewCache.InvalidateViews(ctx); err != nil {
			s.logger.Warn("view cache invalidation failed", zap.Error(err))
		}
	}
}

// ExecuteCommand dispatches a resolved command and produces a human-readable
// reply for the conversational surface.
func (s *RoutineService) ExecuteCommand(ctx context.Context, cmd dto.Command) (string, error) {
	switch cmd.Intent {
	case dto.IntentCreateRoutine, dto.IntentRegenerateRoutine:
		resp, err := s.CreateRoutine(ctx, dto.GenerateRoutineRequest{
			SectionCode: cmd.SectionCode,
			ClassName:   cmd.ClassName,
			GroupCode:   cmd.GroupCode,
		})
		if err != nil {
			return "", err
		}
		var parts []string
		for _, r := range resp.Results {
			part := fmt.Sprintf("section %s: %d classes scheduled", r.SectionCode, len(r.Entries))
			if len(r.Warnings) > 0 {
				part += fmt.Sprintf(" (%s)", strings.Join(r.Warnings, "; "))
			}
			parts = append(parts, part)
		}
		reply := "Routine created. " + strings.Join(parts, ". ")
		if len(resp.Violations) > 0 {
			reply += fmt.Sprintf(". %d constraint violations found", len(resp.Violations))
		}
		return reply, nil

	case dto.IntentReschedule:
		resp, err := s.RescheduleSubject(ctx, dto.RescheduleRequest{
			SectionCode: cmd.SectionCode,
			Subject:     cmd.Subject,
			AvoidDay:    cmd.AvoidDay,
		})
		if err != nil {
			return "", err
		}
		return strings.Join(resp.Messages, ". "), nil

	case dto.IntentShowRoutine:
		view, err := s.ShowRoutine(ctx, cmd.SectionCode)
		if err != nil {
			return "", err
		}
		if len(view.Entries) == 0 {
			return "The routine is empty. Create one first.", nil
		}
		return fmt.Sprintf("The routine currently holds %d classes.", len(view.Entries)), nil

	case dto.IntentSaveRoutine:
		resp := s.SaveRoutine(ctx)
		if resp.Saved > 0 {
			return fmt.Sprintf("Saved %d classes to the database.", resp.Saved), nil
		}
		return resp.Status, nil

	default:
		return "Sorry, I could not understand that. Try asking to create, show, reschedule or save a routine.", nil
	}
}
