package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/SscSPs/money_tracker/internal/dto"
	"github.com/SscSPs/money_tracker/internal/handlers"
	"github.com/SscSPs/money_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID int64, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID int64, id int64) (*domain.DeletedTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletedTransaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID int64, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, userID int64, accountID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByCreditCard(ctx context.Context, userID int64, creditCardID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, creditCardID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) CountTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

const testUserID int64 = 7

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		IsProduction:    true,
		RateLimit:       "1000-M",
		DefaultPageSize: 20,
	}
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{Transaction: suite.mockService})
	suite.Require().NoError(err)
}

// generateTestToken creates a signed JWT for userID.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID int64) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "money-tracker-test",
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *TransactionHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleTransaction() *domain.Transaction {
	accountID := int64(10)
	return &domain.Transaction{
		ID:                99,
		UserID:            testUserID,
		Value:             decimal.RequireFromString("25.50"),
		Date:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TransactionType:   domain.Expense,
		TransactionSource: domain.SourceAccount,
		AccountID:         &accountID,
		Active:            true,
		Tags:              []domain.Tag{{ID: 1, Name: "food"}},
		AuditFields:       domain.AuditFields{Version: 1},
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	suite.mockService.On("CreateTransaction", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Value != nil && req.Value.Equal(decimal.RequireFromString("25.5")) &&
			req.AccountID != nil && *req.AccountID == 10 &&
			len(req.Tags) == 1
	})).Return(sampleTransaction(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions",
		`{"value":"25.5","date":"2024-03-01","transactionType":"EXPENSE","transactionSource":"ACCOUNT","accountId":10,"categoryId":40,"tags":[1]}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(99), resp.ID)
	suite.Equal("25.50", resp.Value)
	suite.Equal([]dto.TagResponse{{ID: 1, Name: "food"}}, resp.Tags)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_BindingFailureNamesJSONFields() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", `{"date":"2024-03-01","transactionType":"GIFT","transactionSource":"ACCOUNT"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal(apperrors.CodeValidation, body.Code)

	fields := map[string]string{}
	for _, f := range body.Fields {
		fields[f.Field] = f.Message
	}
	suite.Equal("is required", fields["value"])
	suite.Equal("must be one of [INCOME EXPENSE]", fields["transactionType"])
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MalformedJSON() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", `{"value":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apperrors.CodeValidation, suite.decodeError(w).Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ErrorMapping() {
	tests := []struct {
		name    string
		err     error
		status  int
		code    apperrors.ErrorCode
		message string
	}{
		{
			name:    "not found keeps specific code",
			err:     apperrors.NewNotFoundError(apperrors.CodeAccountNotFound, "account 10 not found"),
			status:  http.StatusNotFound,
			code:    apperrors.CodeAccountNotFound,
			message: "account 10 not found",
		},
		{
			name:    "validation",
			err:     apperrors.NewValidationError("request validation failed"),
			status:  http.StatusBadRequest,
			code:    apperrors.CodeValidation,
			message: "request validation failed",
		},
		{
			name:    "internal hides cause",
			err:     apperrors.NewInternalError(errors.New("connection reset by peer")),
			status:  http.StatusInternalServerError,
			code:    apperrors.CodeInternal,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockService.On("CreateTransaction", mock.Anything, testUserID, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions",
				`{"value":"1","date":"2024-03-01","transactionType":"EXPENSE","transactionSource":"ACCOUNT","accountId":10,"categoryId":40}`)

			suite.Equal(tt.status, w.Code)
			body := suite.decodeError(w)
			suite.Equal(tt.code, body.Code)
			suite.Equal(tt.message, body.Message)
		})
	}
}

func (suite *TransactionHandlerTestSuite) TestRequiresBearerToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apperrors.CodeUnauthorized, suite.decodeError(w).Code)
}

func (suite *TransactionHandlerTestSuite) TestHealthIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_InvalidID() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/abc", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Require().Len(body.Fields, 1)
	suite.Equal("id", body.Fields[0].Field)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	suite.mockService.On("GetTransactionByID", mock.Anything, testUserID, int64(5)).
		Return(nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, "transaction 5 not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/5", "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(apperrors.CodeNotFound, suite.decodeError(w).Code)
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_PatchWithEmptyTags() {
	updated := sampleTransaction()
	updated.Tags = []domain.Tag{}
	updated.Version = 2
	suite.mockService.On("UpdateTransaction", mock.Anything, testUserID, int64(99), mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Tags != nil && len(*req.Tags) == 0 && req.Value == nil && req.Active != nil && !*req.Active
	})).Return(updated, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/99", `{"tags":[],"active":false}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotNil(resp.Tags)
	suite.Empty(resp.Tags)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_PutRoutesToSameHandler() {
	suite.mockService.On("UpdateTransaction", mock.Anything, testUserID, int64(99), mock.Anything).Return(sampleTransaction(), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/99", `{"observation":"lunch"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction() {
	suite.mockService.On("DeleteTransaction", mock.Anything, testUserID, int64(99)).
		Return(&domain.DeletedTransaction{ID: 99}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/99", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"id":99}`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_AppliesDefaultPageSize() {
	token := "abc"
	suite.mockService.On("ListTransactionsByUser", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 20 && p.TransactionType == "INCOME" && p.From == "2024-01-01"
	})).Return(&dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses([]domain.Transaction{*sampleTransaction()}),
		NextToken:    &token,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?transactionType=INCOME&from=2024-01-01", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("abc", *resp.NextToken)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_RejectsOversizedLimit() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=500", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCountTransactions() {
	suite.mockService.On("CountTransactionsByUser", mock.Anything, testUserID, mock.Anything).Return(int64(42), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/count", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"count":42}`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestListByHolder() {
	empty := &dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}
	suite.mockService.On("ListTransactionsByAccount", mock.Anything, testUserID, int64(10), mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 5
	})).Return(empty, nil).Once()
	suite.mockService.On("ListTransactionsByCreditCard", mock.Anything, testUserID, int64(30), mock.Anything).Return(empty, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/accounts/10/transactions?limit=5", "").Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/credit-cards/30/transactions", "").Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
