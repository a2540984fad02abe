package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/services"
)

// PreferenceHandler handles per-user settings.
type PreferenceHandler struct {
	preferenceService services.PreferenceServicer
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService services.PreferenceServicer) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// SetCurrencyRequest is the payload for changing the default currency.
type SetCurrencyRequest struct {
	Currency models.WalletCurrency `json:"currency" binding:"required,wallet_currency"`
}

// GetPreferences returns the user's preferences
// @Summary     Get preferences
// @Description preferences is null until the user saves one
// @Tags        preferences
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserPreference "Preferences"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prefs, err := h.preferenceService.GetPreferences(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// SetDefaultCurrency stores the user's default currency
// @Summary     Set default currency
// @Tags        preferences
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetCurrencyRequest true "Currency"
// @Success     200 {object} models.UserPreference "Preferences"
// @Failure     400 {object} ErrorResponse "Unsupported currency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /preferences/currency [put]
func (h *PreferenceHandler) SetDefaultCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	prefs, err := h.preferenceService.SetDefaultCurrency(userID, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
