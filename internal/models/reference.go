package models

// Category is a row of the categories table.
type Category struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
	AuditFields
}

// Subcategory is a row of the subcategories table.
type Subcategory struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	CategoryID int64  `db:"category_id"`
	Name       string `db:"name"`
	Active     bool   `db:"active"`
	AuditFields
}

// Tag is a row of the tags table.
type Tag struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
}

// TransactionTag is a row of the transaction_tags link table joined with its tag.
type TransactionTag struct {
	TransactionID int64 `db:"transaction_id"`
	Tag
}
