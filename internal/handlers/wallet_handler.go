package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/services"
)

// WalletHandler handles wallet-related requests.
type WalletHandler struct {
	walletService services.WalletServicer
	auditService  services.AuditServicer
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService services.WalletServicer, auditService services.AuditServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService, auditService: auditService}
}

// CreateWalletRequest represents the request payload for creating a wallet.
type CreateWalletRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=100"`
	Currency      models.WalletCurrency `json:"currency" binding:"required,wallet_currency"`
	Color         models.WalletColor    `json:"color" binding:"required,wallet_color"`
	Icon          models.WalletIcon     `json:"icon" binding:"required,wallet_icon"`
	InitialAmount int64                 `json:"initial_amount"`
}

// UpdateWalletRequest represents the request payload for updating a wallet.
// Omitted fields are left unchanged.
type UpdateWalletRequest struct {
	Name          *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Currency      *models.WalletCurrency `json:"currency" binding:"omitempty,wallet_currency"`
	Color         *models.WalletColor    `json:"color" binding:"omitempty,wallet_color"`
	Icon          *models.WalletIcon     `json:"icon" binding:"omitempty,wallet_icon"`
	InitialAmount *int64                 `json:"initial_amount"`
}

// ReorderWalletsRequest lists wallet ids in their new display order.
type ReorderWalletsRequest struct {
	WalletIDs []string `json:"wallet_ids" binding:"required"`
}

// ReorderResponse reports how many entries of a reorder were applied.
type ReorderResponse struct {
	Updated int `json:"updated"`
}

// CreateWallet handles the creation of a new wallet
// @Summary     Create a wallet
// @Description Create a new wallet placed after the user's existing wallets
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWalletRequest true "Wallet details"
// @Success     201 {object} models.Wallet "Wallet created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallets [post]
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, err := h.walletService.CreateWallet(userID, req.Name, req.Currency, req.Color, req.Icon, req.InitialAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_WALLET", "wallet", wallet.ID, c.ClientIP(),
		map[string]interface{}{"name": wallet.Name, "currency": wallet.Currency})

	c.JSON(http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets returns the user's wallets
// @Summary     List wallets
// @Description Get the authenticated user's wallets in display order, with balances
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Wallet "Wallets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /wallets [get]
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallets, err := h.walletService.ListWallets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// GetWalletByID returns a single wallet
// @Summary     Get wallet by ID
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} models.Wallet "Wallet"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [get]
func (h *WalletHandler) GetWalletByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallet, err := h.walletService.GetWalletByID(userID, walletID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// UpdateWallet handles updating a wallet
// @Summary     Update wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Wallet ID"
// @Param       request body UpdateWalletRequest true "Fields to change"
// @Success     200 {object} models.Wallet "Updated wallet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [put]
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, err := h.walletService.UpdateWallet(userID, walletID, services.WalletUpdateFields{
		Name:          req.Name,
		Currency:      req.Currency,
		Color:         req.Color,
		Icon:          req.Icon,
		InitialAmount: req.InitialAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// DeleteWallet handles deleting a wallet
// @Summary     Delete wallet
// @Description Delete a wallet. Wallets that still have transactions cannot be deleted.
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} MessageResponse "Wallet deleted"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Failure     409 {object} ErrorResponse "Wallet has transactions"
// @Router      /wallets/{id} [delete]
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.walletService.DeleteWallet(userID, walletID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_WALLET", "wallet", walletID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Wallet deleted successfully"})
}

// ReorderWallets sets the display order of the user's wallets
// @Summary     Reorder wallets
// @Description Each listed wallet takes its index as order. Unknown or foreign ids are skipped.
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderWalletsRequest true "Wallet ids in display order"
// @Success     200 {object} ReorderResponse "Number of wallets updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /wallets/reorder [put]
func (h *WalletHandler) ReorderWallets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.walletService.ReorderWallets(userID, req.WalletIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReorderResponse{Updated: updated})
}
