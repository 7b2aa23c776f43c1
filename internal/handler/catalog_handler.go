package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/response"
)

type catalogReader interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
}

// CatalogHandler exposes the read-only reference tables.
type CatalogHandler struct {
	service catalogReader
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.RoutineService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Get godoc
// @Summary Get the full catalog of classes, sections, subjects, teachers and rooms
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalog)
}

// Sections godoc
// @Summary List sections, optionally for one class
// @Tags Catalog
// @Produce json
// @Param class query string false "Class name"
// @Success 200 {object} response.Envelope
// @Router /catalog/sections [get]
func (h *CatalogHandler) Sections(c *gin.Context) {
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	className := c.Query("class")
	if className == "" {
		response.JSON(c, http.StatusOK, catalog.Sections)
		return
	}
	class, ok := catalog.ClassByName(className)
	if !ok {
		response.JSON(c, http.StatusOK, []models.Section{})
		return
	}
	response.JSON(c, http.StatusOK, catalog.SectionsByClass(class.ID, c.Query("group")))
}
