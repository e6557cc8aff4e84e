package repository

import "context"

// TransactionManager runs a unit of work atomically. When fn returns an error
// (or panics) nothing it wrote is kept; otherwise everything is committed together.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction. It is
// the only way to write a credential and its identity.
type RepositoryFactory interface {
	CredentialRepo() CredentialRepository
	IdentityRepo() IdentityRepository
}
