package domain

import "github.com/shopspring/decimal"

// Account is a bank account whose balance the ledger keeps consistent.
type Account struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"userId"`
	Name     string          `json:"name"`
	BankName *string         `json:"bankName"`
	Balance  decimal.Decimal `json:"balance"`
	Active   bool            `json:"active"`
	AuditFields
}

// AsHolder projects the account onto the common holder view.
func (a Account) AsHolder() BalanceHolder {
	return BalanceHolder{
		Ref:     HolderRef{Source: SourceAccount, ID: a.ID},
		UserID:  a.UserID,
		Balance: a.Balance,
	}
}

// CreditCard is a card whose balance represents outstanding debt.
type CreditCard struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay *int            `json:"closingDay"`
	DueDay     *int            `json:"dueDay"`
	Balance    decimal.Decimal `json:"balance"`
	Active     bool            `json:"active"`
	AuditFields
}

// AsHolder projects the credit card onto the common holder view.
func (c CreditCard) AsHolder() BalanceHolder {
	return BalanceHolder{
		Ref:     HolderRef{Source: SourceCreditCard, ID: c.ID},
		UserID:  c.UserID,
		Balance: c.Balance,
	}
}

// BalanceHolder is the part of an Account or CreditCard the ledger cares about.
type BalanceHolder struct {
	Ref     HolderRef
	UserID  int64
	Balance decimal.Decimal
}
