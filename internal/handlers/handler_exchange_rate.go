package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/centsible/centsible_app/internal/apperrors"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.PUT("", h.upsertExchangeRate)
		rates.GET("/:from/:to", h.getExchangeRate)
		rates.GET("/:from/:to/convert", h.convert)
	}
}

func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to upsert exchange rate",
		slog.String("from", req.FromCurrencyCode), slog.String("to", req.ToCurrencyCode))

	rate, err := h.rateService.UpsertExchangeRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error upserting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Currency referenced by exchange rate not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert exchange rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found", slog.String("from", from), slog.String("to", to))
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// convert applies the stored rate (direct, inverse, or identity fallback) to
// the amount given in the query string.
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))

	amountStr := c.Query("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		logger.Warn("Invalid amount for conversion", slog.String("amount", amountStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: must be a decimal number"})
		return
	}

	converted := h.rateService.Convert(c.Request.Context(), amount, from, to)
	c.JSON(http.StatusOK, dto.ConvertResponse{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Amount:           amount,
		Converted:        converted,
	})
}
