package services

import (
	"strings"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/dto"
	"github.com/SscSPs/money_tracker/internal/utils/accounting"
	"github.com/SscSPs/money_tracker/internal/utils/validation"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxPaymentDay = 31

// newLedgerValidator validates request DTOs by their binding tags and
// candidate rows by the cross-field rules in ledgerRules.
func newLedgerValidator() *validator.Validate {
	v := validation.New()
	v.RegisterStructValidation(ledgerRules, domain.Transaction{})
	return v
}

// ledgerRules checks a fully merged transaction, so create and update share
// exactly the same rules.
func ledgerRules(sl validator.StructLevel) {
	txn, ok := sl.Current().Interface().(domain.Transaction)
	if !ok {
		return
	}

	if !txn.Value.GreaterThan(decimal.Zero) {
		sl.ReportError(txn.Value, "value", "Value", "gt", "0")
	}
	if txn.Date.IsZero() {
		sl.ReportError(txn.Date, "date", "Date", "required", "")
	}
	if !txn.TransactionType.IsValid() {
		sl.ReportError(txn.TransactionType, "transactionType", "TransactionType", "oneof", "INCOME EXPENSE")
	}

	switch txn.TransactionSource {
	case domain.SourceAccount:
		if txn.AccountID == nil {
			sl.ReportError(txn.AccountID, "accountId", "AccountID", "required_for_source", string(domain.SourceAccount))
		}
		if txn.CreditCardID != nil {
			sl.ReportError(txn.CreditCardID, "creditCardId", "CreditCardID", "excluded_for_source", string(domain.SourceAccount))
		}
	case domain.SourceCreditCard:
		if txn.CreditCardID == nil {
			sl.ReportError(txn.CreditCardID, "creditCardId", "CreditCardID", "required_for_source", string(domain.SourceCreditCard))
		}
		if txn.AccountID != nil {
			sl.ReportError(txn.AccountID, "accountId", "AccountID", "excluded_for_source", string(domain.SourceCreditCard))
		}
	default:
		sl.ReportError(txn.TransactionSource, "transactionSource", "TransactionSource", "oneof", "ACCOUNT CREDIT_CARD")
	}

	if txn.CategoryID == nil && txn.SubcategoryID == nil {
		sl.ReportError(txn.CategoryID, "categoryId", "CategoryID", "required_without", "subcategoryId")
	}

	if txn.IsInstallment && (txn.TotalMonths == nil || *txn.TotalMonths <= 0) {
		sl.ReportError(txn.TotalMonths, "totalMonths", "TotalMonths", "gt", "0")
	}
	if txn.IsRecurring && (txn.PaymentDay == nil || *txn.PaymentDay < 1 || *txn.PaymentDay > maxPaymentDay) {
		sl.ReportError(txn.PaymentDay, "paymentDay", "PaymentDay", "range", "1-31")
	}
}

func invalidDate() error {
	return apperrors.NewValidationError("request validation failed", validation.NewFieldError("date", "date", ""))
}

// transactionFromCreate maps a create request onto a candidate row.
func transactionFromCreate(req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, invalidDate()
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	txn := &domain.Transaction{
		Value:             accounting.NormalizeAmount(req.Value),
		Date:              date,
		TransactionType:   domain.TransactionType(req.TransactionType),
		TransactionSource: domain.TransactionSource(req.TransactionSource),
		AccountID:         req.AccountID,
		CreditCardID:      req.CreditCardID,
		CategoryID:        req.CategoryID,
		SubcategoryID:     req.SubcategoryID,
		IsInstallment:     req.IsInstallment,
		TotalMonths:       req.TotalMonths,
		IsRecurring:       req.IsRecurring,
		PaymentDay:        req.PaymentDay,
		Observation:       normalizeObservation(req.Observation),
		Active:            active,
	}
	clearUnusedSchedule(txn)
	return txn, nil
}

// applyPatch merges req over current. Unspecified fields keep their value and
// switching the source drops the reference to the other holder kind.
func applyPatch(current domain.Transaction, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	next := current
	next.Tags = nil

	if req.Value != nil {
		next.Value = accounting.NormalizeAmount(req.Value)
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, invalidDate()
		}
		next.Date = date
	}
	if req.TransactionType != nil {
		next.TransactionType = domain.TransactionType(*req.TransactionType)
	}
	if req.TransactionSource != nil {
		next.TransactionSource = domain.TransactionSource(*req.TransactionSource)
	}
	if req.AccountID != nil {
		next.AccountID = req.AccountID
	}
	if req.CreditCardID != nil {
		next.CreditCardID = req.CreditCardID
	}
	if next.TransactionSource != current.TransactionSource {
		switch next.TransactionSource {
		case domain.SourceAccount:
			next.CreditCardID = nil
		case domain.SourceCreditCard:
			next.AccountID = nil
		}
	}
	if req.CategoryID != nil {
		next.CategoryID = req.CategoryID
	}
	if req.SubcategoryID != nil {
		next.SubcategoryID = req.SubcategoryID
	}
	if req.IsInstallment != nil {
		next.IsInstallment = *req.IsInstallment
	}
	if req.TotalMonths != nil {
		next.TotalMonths = req.TotalMonths
	}
	if req.IsRecurring != nil {
		next.IsRecurring = *req.IsRecurring
	}
	if req.PaymentDay != nil {
		next.PaymentDay = req.PaymentDay
	}
	if req.Observation != nil {
		next.Observation = normalizeObservation(req.Observation)
	}
	if req.Active != nil {
		next.Active = *req.Active
	}

	clearUnusedSchedule(&next)
	return &next, nil
}

func normalizeObservation(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// clearUnusedSchedule drops schedule details whose flag is off.
func clearUnusedSchedule(txn *domain.Transaction) {
	if !txn.IsInstallment {
		txn.TotalMonths = nil
	}
	if !txn.IsRecurring {
		txn.PaymentDay = nil
	}
}
