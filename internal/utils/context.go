package utils

import (
	"context"
)

type contextKey string

const ContextBearerTokenKey contextKey = "bearerToken"

func GetBearerTokenFromContext(ctx context.Context) (string, bool) {
	token := ctx.Value(ContextBearerTokenKey)
	tokenStr, ok := token.(string)
	return tokenStr, ok
}
