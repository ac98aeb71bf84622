package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fridgehub/groups/internal/handler/middleware"
	jwtpkg "fridgehub/groups/pkg/jwt"
)

var ErrNoClaims = errors.New("claims not found in context")

func claimsFromContext(c *gin.Context) (*jwtpkg.Claims, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyUserClaims)
	if !exists {
		return nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}
