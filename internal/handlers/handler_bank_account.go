package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	portssvc "github.com/praxisdesk/clinic_management_app/internal/core/ports/services"
	"github.com/praxisdesk/clinic_management_app/internal/dto"
	"github.com/praxisdesk/clinic_management_app/internal/middleware"
)

// bankAccountHandler handles HTTP requests for bank accounts.
type bankAccountHandler struct {
	ledgerService         portssvc.BankLedgerSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newBankAccountHandler(ls portssvc.BankLedgerSvcFacade, rs portssvc.ReconciliationSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{
		ledgerService:         ls,
		reconciliationService: rs,
	}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.BankLedgerSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newBankAccountHandler(ledgerService, reconciliationService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:id", h.getBankAccount)
		accounts.GET("/:id/entries", h.listAccountEntries)
		accounts.POST("/:id/recalculate", h.recalculateBalance)
	}
}

func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)

	account, err := h.ledgerService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank account")
		return
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.ledgerService.GetBankAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.ledgerService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bankAccounts": dto.ToBankAccountResponses(accounts)})
}

func (h *bankAccountHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var status *domain.EntryStatus
	if s := c.Query("status"); s != "" {
		es := domain.EntryStatus(s)
		status = &es
	}

	entries, err := h.reconciliationService.ListEntriesByAccount(c.Request.Context(), bankAccountID, status)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list account entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToFinancialEntryResponses(entries)})
}

// recalculateBalance recomputes the account's balance from scratch as a fold
// over its paid entries.
func (h *bankAccountHandler) recalculateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var req dto.RecalculateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecalculateBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("bank_account_id", bankAccountID))

	account, err := h.ledgerService.RecalculateBalance(c.Request.Context(), bankAccountID, req.InitialBalance, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate balance")
		return
	}

	logger.Info("Balance recalculated", slog.String("current_balance", account.CurrentBalance.String()))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}
