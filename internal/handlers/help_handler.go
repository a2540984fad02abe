package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/services"
)

// HelpHandler accepts "get help" submissions.
type HelpHandler struct {
	helpService services.HelpServicer
}

// NewHelpHandler creates a new HelpHandler.
func NewHelpHandler(helpService services.HelpServicer) *HelpHandler {
	return &HelpHandler{helpService: helpService}
}

// HelpRequest is a help form submission.
type HelpRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// SubmitHelp stores a help message
// @Summary     Submit a help request
// @Description Signed-in users have the message linked to their account
// @Tags        help
// @Accept      json
// @Produce     json
// @Param       request body HelpRequest true "Message"
// @Success     201 {object} models.HelpMessage "Stored message"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /help [post]
func (h *HelpHandler) SubmitHelp(c *gin.Context) {
	var req HelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var userID *string
	if id := optionalUserID(c); id != "" {
		userID = &id
	}

	msg, err := h.helpService.CreateHelpMessage(userID, req.Name, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"help_message": msg})
}
