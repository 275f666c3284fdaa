package handler

import (
	"campaign-gateway/internal/apierrors"
	"campaign-gateway/internal/auth/processor"
	"campaign-gateway/internal/observability"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is where the middleware stores the verified subject.
const UserIDKey = "User-ID"

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authorization token is missing or invalid"))
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	claims, err := h.authProcessor.ValidateJWTToken(ctx, tokenString)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized(err.Error()))
		return
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		h.logger.Warn(ctx, "token subject is not a user id")
		apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid token subject"))
		return
	}

	c.Set(UserIDKey, claims.Subject)
	c.Next()
}
