package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// WalletHandler serves the prepaid wallet and loyalty points.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Balance handles GET /api/wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	user := middleware.CurrentUser(c)
	wallet, err := h.facade.WalletBalance(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewWalletResponse(wallet))
}

// TopUp handles POST /api/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}
	wallet, err := h.facade.WalletTopUp(c.Request.Context(), user.ID, amount)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewWalletResponse(wallet))
}

// History handles GET /api/wallet/transactions.
func (h *WalletHandler) History(c *gin.Context) {
	user := middleware.CurrentUser(c)
	txs, err := h.facade.WalletHistory(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewWalletTransactionResponses(txs))
}

// Loyalty handles GET /api/loyalty.
func (h *WalletHandler) Loyalty(c *gin.Context) {
	user := middleware.CurrentUser(c)
	summary, err := h.facade.LoyaltySummary(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewLoyaltyResponse(summary))
}

// Redeem handles POST /api/loyalty/redeem.
func (h *WalletHandler) Redeem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	wallet, err := h.facade.RedeemPoints(c.Request.Context(), user.ID, req.Points)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewWalletResponse(wallet))
}
