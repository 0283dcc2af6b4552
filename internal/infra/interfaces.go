package infra

import "context"

type ProductClientInterface interface {
	GetProductByID(ctx context.Context, id uint64) (*ProductInfo, error)
}

var _ ProductClientInterface = (*ProductClient)(nil)

// AuthClientInterface resolves a bearer credential to a user id. Credential
// validation is fully delegated; this service never inspects tokens itself.
type AuthClientInterface interface {
	VerifyToken(ctx context.Context, token string) (uint64, error)
}

var _ AuthClientInterface = (*AuthClient)(nil)
