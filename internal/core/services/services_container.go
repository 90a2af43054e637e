package services

import (
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
)

// NewServiceContainer wires every service from the repository provider.
// publisher may be nil, in which case no ledger events are emitted.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.LedgerEventPublisher) *portssvc.ServiceContainer {
	refs := NewReferenceValidatorService(
		repos.AccountRepo,
		repos.CreditCardRepo,
		repos.CategoryRepo,
		repos.SubcategoryRepo,
		repos.TagRepo,
	)
	tags := NewTagAssociationService(repos.TransactionTagRepo)

	var opts []TransactionServiceOption
	if publisher != nil {
		opts = append(opts, WithEventPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.AccountRepo,
			repos.CreditCardRepo,
			refs,
			tags,
			opts...,
		),
		ReferenceValidator: refs,
		TagAssociation:     tags,
	}
}
