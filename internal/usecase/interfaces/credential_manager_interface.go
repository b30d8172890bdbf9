package interfaces

import (
	"context"

	"marketplace_pagamentos/internal/domain/entities"
)

// ICredentialManager supplies the current valid credential for one
// provider. Implementations cache acquired tokens in memory and refresh
// them before expiry; acquisition failures propagate without caching so
// the caller decides whether to retry.

type ICredentialManager interface {
	GetToken(ctx context.Context) (entities.ProviderCredential, error)
}
