package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo    TransactionRepositoryWithTx
	AccountRepo        AccountRepository
	CreditCardRepo     CreditCardRepository
	CategoryRepo       CategoryRepository
	SubcategoryRepo    SubcategoryRepository
	TagRepo            TagRepository
	TransactionTagRepo TransactionTagRepository
}
