package tenant

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey struct{}

// WithID returns a context carrying the tenant identifier. Every service call
// expects the id to be present; it is set once by the HTTP middleware.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the tenant identifier from ctx, or "" if none was set.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Scope restricts a query to rows owned by the tenant in ctx.
func Scope(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", ID(ctx))
	}
}
