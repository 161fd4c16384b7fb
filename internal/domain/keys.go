package domain

import "context"

type CtxKey string

const (
	KeyIdentity  CtxKey = "Identity"
	KeyRequestID CtxKey = "RequestID"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	AccountID string
	Role      Role
	Account   Account
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, id)
}

// IdentityFrom returns nil when the request is unauthenticated.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(KeyIdentity).(*Identity)
	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
