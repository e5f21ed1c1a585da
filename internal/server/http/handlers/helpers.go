package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	pkgAuth "github.com/elijahkelechi/Beautytrendy-API/internal/pkg/auth"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return false
	}
	role, _ := val.(string)
	return role == pkgAuth.RoleAdmin
}

// abortWithError maps domain error kinds onto HTTP responses.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
