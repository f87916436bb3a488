package api

import (
	"strings"

	"github.com/dengue-surveillance-api/internal/auth"
	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
)

// identityKey is where the authenticated claims live in the gin context
const identityKey = "identity"

// bearerToken extracts the token from an "Authorization: Bearer <t>" header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// authMiddleware verifies the bearer token and attaches the decoded
// identity to the request context
func authMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, customerrors.ErrMissingToken)
			c.Abort()
			return
		}

		claims, err := authSvc.Verify(token)
		if err != nil {
			respondError(c, customerrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// requireRoles gates a route to the given roles. Must run after
// authMiddleware.
func requireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		claims := identity(c)
		if claims == nil {
			respondError(c, customerrors.ErrMissingToken)
			c.Abort()
			return
		}
		if !allowed[claims.Role] {
			respondError(c, customerrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// identity returns the authenticated claims, or nil when the request did
// not pass authMiddleware
func identity(c *gin.Context) *auth.Claims {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
