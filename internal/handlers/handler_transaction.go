package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/SscSPs/money_tracker/internal/dto"
	"github.com/SscSPs/money_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	defaultPageSize    int
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, defaultPageSize int) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		defaultPageSize:    defaultPageSize,
	}
}

// RegisterTransactionRoutes registers the transaction routes plus the
// per-holder listings on rg.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, defaultPageSize int) {
	h := newTransactionHandler(ts, defaultPageSize)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/count", h.countTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.PATCH("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}

	rg.GET("/accounts/:accountID/transactions", h.listTransactionsByAccount)
	rg.GET("/credit-cards/:creditCardID/transactions", h.listTransactionsByCreditCard)
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense against an account or credit card and updates the holder balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Referenced holder, category or tag not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Partially updates a transaction. Absent fields keep their value; a present tags array replaces all tags.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, id, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction updated", slog.Int64("transaction_id", txn.ID), slog.Int64("version", txn.Version))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction, its tag links and its balance contribution
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.DeleteTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteTransactionResponse{ID: deleted.ID})
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's transactions, newest first, with token-based pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Param   from query string false "Earliest date (inclusive)"
// @Param   to query string false "Latest date (inclusive)"
// @Param   transactionType query string false "INCOME or EXPENSE"
// @Param   transactionSource query string false "ACCOUNT or CREDIT_CARD"
// @Param   categoryId query int false "Category filter"
// @Param   subcategoryId query int false "Subcategory filter"
// @Param   active query bool false "Active filter"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	resp, err := h.transactionService.ListTransactionsByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// countTransactions godoc
// @Summary Count transactions
// @Description Counts the user's transactions matching the list filters
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.CountTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/count [get]
func (h *transactionHandler) countTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	count, err := h.transactionService.CountTransactionsByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountTransactionsResponse{Count: count})
}

// listTransactionsByAccount godoc
// @Summary List transactions for an account
// @Tags transactions
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactionsByAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "accountID")
	if !ok {
		return
	}
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	resp, err := h.transactionService.ListTransactionsByAccount(c.Request.Context(), userID, accountID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listTransactionsByCreditCard godoc
// @Summary List transactions for a credit card
// @Tags transactions
// @Produce  json
// @Param   creditCardID path int true "Credit card ID"
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /credit-cards/{creditCardID}/transactions [get]
func (h *transactionHandler) listTransactionsByCreditCard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "creditCardID")
	if !ok {
		return
	}
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	resp, err := h.transactionService.ListTransactionsByCreditCard(c.Request.Context(), userID, cardID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) bindListParams(c *gin.Context) (dto.ListTransactionsParams, bool) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err)
		return params, false
	}
	if params.Limit == 0 {
		params.Limit = h.defaultPageSize
	}
	return params, true
}
