package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/adapter/payment"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}

// respondDomainError maps sentinel domain errors onto HTTP statuses inside
// the response envelope.
func respondDomainError(c *gin.Context, err error) {
	var tooMany payment.TooManyRequestsError
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domainErrors.ErrSessionExpired):
		respondError(c, http.StatusUnauthorized, "session expired")
	case errors.Is(err, domainErrors.ErrForbidden):
		respondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, domainErrors.ErrEmptyBasket):
		respondError(c, http.StatusBadRequest, "basket is empty")
	case errors.Is(err, domainErrors.ErrInvalidPeriod):
		respondError(c, http.StatusBadRequest, "invalid reporting period")
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		respondError(c, http.StatusUnprocessableEntity, "invalid amount")
	case errors.Is(err, domainErrors.ErrProductInactive):
		respondError(c, http.StatusUnprocessableEntity, "product is not for sale")
	case errors.Is(err, domainErrors.ErrPromoInvalid):
		respondError(c, http.StatusUnprocessableEntity, "promo code not applicable")
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		respondError(c, http.StatusConflict, "insufficient stock")
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "invalid status transition")
	case errors.Is(err, domainErrors.ErrConversationClosed):
		respondError(c, http.StatusConflict, "conversation is closed")
	case errors.Is(err, domainErrors.ErrInsufficientBalance),
		errors.Is(err, domainErrors.ErrInsufficientPoints),
		errors.Is(err, payment.ErrDeclined):
		respondError(c, http.StatusPaymentRequired, "payment required")
	case errors.As(err, &tooMany):
		c.Header("Retry-After", strconv.Itoa(int(tooMany.RetryAfter.Seconds())))
		respondError(c, http.StatusTooManyRequests, "gateway rate limited")
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parseAmount(c *gin.Context, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid amount")
		return decimal.Zero, false
	}
	return amount, true
}

// parsePeriod reads the from/to query parameters as RFC 3339 timestamps.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid from")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid to")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// parseSince reads the optional since query parameter, zero when absent.
func parseSince(c *gin.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, true
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid since")
		return time.Time{}, false
	}
	return since, true
}
