package utils

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found {
		// fall back to a usable logger rather than panic deep in a request
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithLogger := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctxWithLogger)
		c.Next()
	}
}

// OrganizationIdFromRequest reads the organization scope of an API call from
// the organization-id query parameter. Every tenant-scoped route requires it.
func OrganizationIdFromRequest(request *http.Request) (string, error) {
	organizationId := request.URL.Query().Get("organization-id")
	if organizationId == "" {
		return "", errMissingOrganizationId
	}
	if err := ValidateUuid(organizationId); err != nil {
		return "", err
	}
	return organizationId, nil
}

func Ptr[T any](v T) *T {
	return &v
}
