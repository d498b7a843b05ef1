package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-service/internal/models"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderUserName = "X-User-Name"

	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextUserName = "user_name"
)

// IdentityMiddleware reads the identity forwarded by the authentication
// gateway. It selects flows by role; it does not authenticate.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Details: HeaderUserID + " header is required",
			})
			c.Abort()
			return
		}

		role := models.UserRole(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if role == "" {
			role = models.RoleStudent
		}
		if !role.IsValid() {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unknown user role",
				Details: string(role),
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextUserName, c.GetHeader(HeaderUserName))
		c.Next()
	}
}

// RequireRoleMiddleware checks if user has required role; admins always pass
func RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: err.Error(),
			})
			c.Abort()
			return
		}

		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
		})
		c.Abort()
	}
}

// GetUserFromContext builds the user set by IdentityMiddleware
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return nil, fmt.Errorf("user ID not found in context")
	}
	id, ok := userID.(string)
	if !ok {
		return nil, fmt.Errorf("invalid user ID type in context")
	}

	role, err := GetUserRoleFromContext(c)
	if err != nil {
		return nil, err
	}

	return &models.User{ID: id, Name: c.GetString(ContextUserName), Role: role}, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get(ContextUserRole)
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}
