package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/response"
)

type authenticator interface {
	Login(username, password string) (models.TokenResponse, error)
}

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	service authenticator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}
