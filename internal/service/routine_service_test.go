package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

type stubCatalogProvider struct {
	catalog *models.Catalog
	err     error
}

func (s *stubCatalogProvider) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	return s.catalog, s.err
}

type stubPersistence struct {
	saved     []models.SlotEntry
	saveCalls int
	saveErr   error
	listed    []models.SlotEntry
	listErr   error
}

func (s *stubPersistence) ReplaceAll(ctx context.Context, entries []models.SlotEntry) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append([]models.SlotEntry{}, entries...)
	return nil
}

func (s *stubPersistence) ListAll(ctx context.Context) ([]models.SlotEntry, error) {
	return s.listed, s.listErr
}

type stubViewCache struct {
	views         map[string][]models.SlotEntry
	invalidations int
}

func newStubViewCache() *stubViewCache {
	return &stubViewCache{views: make(map[string][]models.SlotEntry)}
}

func (s *stubViewCache) GetView(ctx context.Context, key string) ([]models.SlotEntry, error) {
	if entries, ok := s.views[key]; ok {
		return entries, nil
	}
	return nil, appErrors.ErrCacheMiss
}

func (s *stubViewCache) SetView(ctx context.Context, key string, entries []models.SlotEntry) error {
	s.views[key] = entries
	return nil
}

func (s *stubViewCache) InvalidateViews(ctx context.Context) error {
	s.views = make(map[string][]models.SlotEntry)
	s.invalidations++
	return nil
}

func newRoutineServiceFixture(persistence *stubPersistence, viewCache *stubViewCache) *RoutineService {
	var p RoutinePersistence
	if persistence != nil {
		p = persistence
	}
	var vc RoutineViewCache
	if viewCache != nil {
		vc = viewCache
	}
	return NewRoutineService(&stubCatalogProvider{catalog: testCatalog()}, p, vc, nil, nil, false)
}

func TestRoutineServiceCreateForSection(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	resp, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Len(t, resp.Results[0].Entries, 15)
	assert.Empty(t, resp.Violations)

	view, err := svc.ShowRoutine(context.Background(), "11a")
	require.NoError(t, err)
	assert.Len(t, view.Entries, 15)
}

func TestRoutineServiceCreateForClass(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	resp, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{ClassName: "Class 11", GroupCode: "hsc-sci"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Empty(t, resp.Violations, "sections generated in sequence share one tracker")

	view, err := svc.ShowRoutine(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, view.Entries, 30)
}

func TestRoutineServiceRegenerateReplacesSection(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)
	_, err = svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)

	view, err := svc.ShowRoutine(context.Background(), "11a")
	require.NoError(t, err)
	assert.Len(t, view.Entries, 15, "regeneration must not duplicate entries")
	assert.Empty(t, svc.Validate())
}

func TestRoutineServiceRoomClaimSurvivesTrackerRebuild(t *testing.T) {
	catalog := testCatalog()
	var teachers []models.Teacher
	for _, teacher := range catalog.Teachers {
		if teacher.Department != "Physics" {
			teachers = append(teachers, teacher)
		}
	}
	catalog.Teachers = teachers
	svc := NewRoutineService(&stubCatalogProvider{catalog: catalog}, nil, nil, nil, nil, false)

	// Physics goes unstaffed, leaving 11a's period 1 empty but reserved.
	first, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)
	require.Len(t, first.Results, 1)
	assert.Len(t, first.Results[0].Entries, 10)
	assert.Equal(t, 1, first.Results[0].RoomID)

	// A slot mutation rebuilds the tracker from the store; the reservation
	// for the empty period must survive the rebuild.
	_, err = svc.RemoveSlot(context.Background(), dto.RemoveSlotRequest{SectionCode: "11a", Day: "Thu", Period: 3})
	require.NoError(t, err)

	second, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11b"})
	require.NoError(t, err)
	require.Len(t, second.Results, 1)
	assert.Equal(t, 2, second.Results[0].RoomID)
	for _, e := range second.Results[0].Entries {
		assert.Equal(t, 2, e.RoomID)
	}
}

func TestRoutineServiceCreateUnknownTarget(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "99z"})
	assert.True(t, appErrors.Is(err, appErrors.ErrSectionNotFound))

	_, err = svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestRoutineServiceRescheduleSubject(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)
	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)

	resp, err := svc.RescheduleSubject(context.Background(), dto.RescheduleRequest{Subject: "Physics", AvoidDay: "Thu"})
	require.NoError(t, err)
	assert.Empty(t, resp.Violations)
	require.NotEmpty(t, resp.Messages)
	assert.Contains(t, resp.Messages[0], "moved 1")

	view, err := svc.ShowRoutine(context.Background(), "11a")
	require.NoError(t, err)
	for _, e := range view.Entries {
		if e.SubjectID == 1 {
			assert.NotEqual(t, "Thu", e.Day)
		}
	}
}

func TestRoutineServiceRescheduleRejectsUnknownDay(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.RescheduleSubject(context.Background(), dto.RescheduleRequest{Subject: "Physics", AvoidDay: "Friday"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestRoutineServiceSlotMutations(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	resp, err := svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11a", Day: "Sun", Period: 1, SubjectID: 1, TeacherID: 2, RoomID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 1)
	assert.Empty(t, resp.Violations)

	resp, err = svc.MoveSlot(context.Background(), dto.MoveSlotRequest{
		SectionCode: "11a", FromDay: "Sun", FromPeriod: 1, ToDay: "Mon", ToPeriod: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Mon", resp.Entries[0].Day)

	resp, err = svc.RemoveSlot(context.Background(), dto.RemoveSlotRequest{
		SectionCode: "11a", Day: "Mon", Period: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
}

func TestRoutineServiceMoveMissingSlot(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.MoveSlot(context.Background(), dto.MoveSlotRequest{
		SectionCode: "11a", FromDay: "Sun", FromPeriod: 1, ToDay: "Mon", ToPeriod: 2,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotNotFound))
}

func TestRoutineServiceMoveOntoOccupiedSlotIsFlagged(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11a", Day: "Sun", Period: 1, SubjectID: 1, TeacherID: 2, RoomID: 1,
	})
	require.NoError(t, err)
	_, err = svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11a", Day: "Mon", Period: 2, SubjectID: 2, TeacherID: 4, RoomID: 2,
	})
	require.NoError(t, err)

	resp, err := svc.MoveSlot(context.Background(), dto.MoveSlotRequest{
		SectionCode: "11a", FromDay: "Sun", FromPeriod: 1, ToDay: "Mon", ToPeriod: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, models.ViolationTimeslotCollision, resp.Violations[0].Kind)
}

func TestRoutineServiceSwapAcrossSections(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11a", Day: "Sun", Period: 1, SubjectID: 1, TeacherID: 2, RoomID: 1,
	})
	require.NoError(t, err)
	_, err = svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11b", Day: "Mon", Period: 3, SubjectID: 3, TeacherID: 6, RoomID: 2,
	})
	require.NoError(t, err)

	resp, err := svc.SwapSlots(context.Background(), dto.SwapSlotsRequest{
		SectionA: "11a", DayA: "Sun", PeriodA: 1,
		SectionB: "11b", DayB: "Mon", PeriodB: 3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	for _, e := range resp.Entries {
		if e.SectionCode == "11a" {
			assert.Equal(t, 3, e.SubjectID)
		} else {
			assert.Equal(t, 1, e.SubjectID)
		}
	}
}

func TestRoutineServiceSaveAndLoad(t *testing.T) {
	persistence := &stubPersistence{}
	svc := newRoutineServiceFixture(persistence, nil)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)

	saveResp := svc.SaveRoutine(context.Background())
	assert.Equal(t, "saved", saveResp.Status)
	assert.Equal(t, 15, saveResp.Saved)
	assert.Len(t, persistence.saved, 15)

	// A fresh session restores the persisted set.
	persistence.listed = persistence.saved
	fresh := newRoutineServiceFixture(persistence, nil)
	count, err := fresh.LoadPersisted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, count)
}

func TestRoutineServiceSaveFailureIsNotFatal(t *testing.T) {
	persistence := &stubPersistence{saveErr: errors.New("connection refused")}
	svc := newRoutineServiceFixture(persistence, nil)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)

	resp := svc.SaveRoutine(context.Background())
	assert.Contains(t, resp.Status, "save failed")
	assert.Zero(t, resp.Saved)

	// The session keeps working after a failed save.
	view, err := svc.ShowRoutine(context.Background(), "11a")
	require.NoError(t, err)
	assert.Len(t, view.Entries, 15)
}

func TestRoutineServiceMutationsInvalidateViewCache(t *testing.T) {
	viewCache := newStubViewCache()
	svc := newRoutineServiceFixture(nil, viewCache)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)
	assert.Equal(t, 1, viewCache.invalidations)

	// Full view gets cached on read, then dropped by the next mutation.
	_, err = svc.ShowRoutine(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, viewCache.views, 1)

	_, err = svc.UpsertSlot(context.Background(), dto.UpsertSlotRequest{
		SectionCode: "11b", Day: "Sun", Period: 1, SubjectID: 1, TeacherID: 1, RoomID: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, viewCache.views)
}

func TestRoutineServiceExecuteCommandCreate(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	reply, err := svc.ExecuteCommand(context.Background(), dto.Command{
		Intent:      dto.IntentCreateRoutine,
		SectionCode: "11a",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Routine created")
	assert.Contains(t, reply, "15 classes")
}

func TestRoutineServiceExecuteCommandUnknown(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	reply, err := svc.ExecuteCommand(context.Background(), dto.Command{Intent: dto.IntentUnknown})
	require.NoError(t, err)
	assert.Contains(t, reply, "could not understand")
}

func TestRoutineServiceReset(t *testing.T) {
	svc := newRoutineServiceFixture(nil, nil)

	_, err := svc.CreateRoutine(context.Background(), dto.GenerateRoutineRequest{SectionCode: "11a"})
	require.NoError(t, err)

	svc.Reset(context.Background())
	view, err := svc.ShowRoutine(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
}
