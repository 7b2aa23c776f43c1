package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/response"
)

type stubCatalogProvider struct {
	catalog *models.Catalog
}

func (s *stubCatalogProvider) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	return s.catalog, nil
}

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Classes:  []models.Class{{ID: 11, Name: "Class 11", Code: "c11"}},
		Sections: []models.Section{{ID: 1, ClassID: 11, Name: "Section A", Code: "11a", GroupCode: "hsc-sci"}},
		Subjects: []models.Subject{
			{ID: 1, Name: "Physics", Code: "phy", Department: "Physics"},
			{ID: 2, Name: "Chemistry", Code: "chem", Department: "Chemistry"},
		},
		SubjectGroups: []models.SubjectGroup{
			{ID: 1, Name: "HSC Science", GroupCode: "hsc-sci", SubjectIDs: []int{1, 2}},
		},
		Teachers: []models.Teacher{
			{ID: 1, Name: "Dr. Rahim Uddin", Code: "t-phy-1", Department: "Physics", Designation: "c_professor"},
			{ID: 2, Name: "Nusrat Jahan", Code: "t-chem-1", Department: "Chemistry", Designation: "a_lecturer"},
		},
		Rooms:  []models.Room{{ID: 1, RoomNo: 101, Rows: 5, Columns: 4, BenchCapacity: 3}},
		Shifts: []models.Shift{{ID: 1, Weekdays: []string{"Fri", "Sat"}, Start: "09:00", End: "15:00"}},
	}
}

func newRouterFixture() *gin.Engine {
	gin.SetMode(gin.TestMode)
	routineSvc := service.NewRoutineService(&stubCatalogProvider{catalog: testCatalog()}, nil, nil, nil, nil, false)
	exportSvc := service.NewExportService()
	h := NewRoutineHandler(routineSvc, exportSvc, nil)
	cmd := NewCommandHandler(service.NewIntentService(nil), routineSvc)

	r := gin.New()
	r.POST("/routine/generate", h.Generate)
	r.POST("/routine/reschedule", h.Reschedule)
	r.GET("/routine", h.Show)
	r.GET("/routine/validate", h.Validate)
	r.PUT("/routine/slots", h.UpsertSlot)
	r.GET("/routine/export/csv", h.ExportCSV)
	r.GET("/routine/export/markdown", h.ExportMarkdown)
	r.POST("/commands", cmd.Execute)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutineHandlerGenerate(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/routine/generate", gin.H{"sectionCode": "11a"})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	assert.Nil(t, envelope.Error)
}

func TestRoutineHandlerGenerateInvalidPayload(t *testing.T) {
	r := newRouterFixture()

	req := httptest.NewRequest(http.MethodPost, "/routine/generate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutineHandlerGenerateUnknownSection(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/routine/generate", gin.H{"sectionCode": "99z"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SECTION_NOT_FOUND", envelope.Error.Code)
}

func TestRoutineHandlerShowAndValidate(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/routine/generate", gin.H{"sectionCode": "11a"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/routine?section=11a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "11a")

	w = doJSON(t, r, http.MethodGet, "/routine/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}

func TestRoutineHandlerUpsertSlot(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPut, "/routine/slots", gin.H{
		"sectionCode": "11a", "day": "Sun", "period": 1,
		"subjectId": 1, "teacherId": 1, "roomId": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"section_code":"11a"`)
}

func TestRoutineHandlerExportCSV(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/routine/generate", gin.H{"sectionCode": "11a"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/routine/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "section_code,day,period")
}

func TestRoutineHandlerExportMarkdown(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/routine/generate", gin.H{"sectionCode": "11a"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/routine/export/markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "## Section 11A")
}

func TestCommandHandlerExecute(t *testing.T) {
	r := newRouterFixture()

	w := doJSON(t, r, http.MethodPost, "/commands", gin.H{"prompt": "create a routine for 11a"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Routine created")

	w = doJSON(t, r, http.MethodPost, "/commands", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
