package domain

// Category groups transactions for reporting.
type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	AuditFields
}

// Subcategory refines a Category.
type Subcategory struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	AuditFields
}

// Tag is a free-form label a user can attach to their own transactions.
type Tag struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
