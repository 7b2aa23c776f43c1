package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/dto"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/response"
)

type intentResolver interface {
	Resolve(prompt string) dto.Command
}

type commandExecutor interface {
	ExecuteCommand(ctx context.Context, cmd dto.Command) (string, error)
}

// CommandHandler exposes the free-text command surface.
type CommandHandler struct {
	resolver intentResolver
	executor commandExecutor
}

// NewCommandHandler constructs the handler.
func NewCommandHandler(resolver *service.IntentService, executor *service.RoutineService) *CommandHandler {
	return &CommandHandler{resolver: resolver, executor: executor}
}

// Execute godoc
// @Summary Resolve a free-text prompt and run the resulting command
// @Tags Commands
// @Accept json
// @Produce json
// @Param payload body dto.CommandRequest true "Command payload"
// @Success 200 {object} response.Envelope
// @Router /commands [post]
func (h *CommandHandler) Execute(c *gin.Context) {
	var req dto.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid command payload"))
		return
	}

	cmd := h.resolver.Resolve(req.Prompt)
	reply, err := h.executor.ExecuteCommand(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CommandResponse{Command: cmd, Reply: reply})
}
