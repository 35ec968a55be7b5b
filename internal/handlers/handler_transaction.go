package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	txnService     portssvc.TransactionSvcFacade
	defaultHorizon int
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, defaultHorizon int) *transactionHandler {
	return &transactionHandler{
		txnService:     ts,
		defaultHorizon: defaultHorizon,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, defaultHorizon int) {
	h := newTransactionHandler(txnService, defaultHorizon)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/:transactionID", h.getTransactionByID)
		txns.POST("/:transactionID/confirm", h.confirmPending)
		txns.POST("/:transactionID/cancel", h.cancelPending)
		txns.POST("/:transactionID/generate", h.generateInstances)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/transactions", h.listTransactionsByAccount)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create transaction",
		slog.String("type", string(req.Type)), slog.String("account_id", req.AccountID))

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactionsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit: must be a positive integer"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	txns, newToken, err := h.txnService.ListTransactionsByAccount(c.Request.Context(), accountID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, newToken))
}

func (h *transactionHandler) confirmPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	if err := h.txnService.ConfirmPending(c.Request.Context(), transactionID); err != nil {
		logger.Error("Failed to confirm transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm transaction"})
		return
	}

	logger.Info("Transaction confirm processed", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) cancelPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	if err := h.txnService.CancelPending(c.Request.Context(), transactionID); err != nil {
		logger.Error("Failed to cancel transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transaction"})
		return
	}

	logger.Info("Transaction cancel processed", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// generateInstances materializes upcoming instances of a recurring template.
// Generation runs automatically on template creation; this endpoint lets the
// client extend the horizon on demand.
func (h *transactionHandler) generateInstances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	horizon := h.defaultHorizon
	if horizonStr := c.Query("horizonMonths"); horizonStr != "" {
		parsed, err := strconv.Atoi(horizonStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid horizonMonths: must be a positive integer"})
			return
		}
		horizon = parsed
	}

	instances, err := h.txnService.GenerateRecurringInstances(c.Request.Context(), transactionID, horizon)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Generation requested for non-template transaction", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate recurring instances", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recurring instances"})
		}
		return
	}

	logger.Info("Recurring instances generated",
		slog.String("transaction_id", transactionID), slog.Int("count", len(instances)))
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(instances, nil))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	scope := domain.DeleteScope(c.DefaultQuery("scope", string(domain.DeleteThisOnly)))
	switch scope {
	case domain.DeleteThisOnly, domain.DeleteThisAndFuture, domain.DeleteAll, domain.DeleteStopHere:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope: must be one of THIS_ONLY, THIS_AND_FUTURE, ALL, STOP_HERE"})
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), transactionID, scope); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error deleting transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	logger.Info("Transaction delete processed",
		slog.String("transaction_id", transactionID), slog.String("scope", string(scope)))
	c.Status(http.StatusNoContent)
}
