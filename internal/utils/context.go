package utils

import (
	"context"
)

type contextKey string

const ContextSearchIDKey contextKey = "searchID"

// WithSearchID tags ctx with the ID of the search it serves.
func WithSearchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextSearchIDKey, id)
}

func GetSearchIDFromContext(ctx context.Context) (string, bool) {
	searchID := ctx.Value(ContextSearchIDKey)
	searchIDStr, ok := searchID.(string)
	return searchIDStr, ok
}
