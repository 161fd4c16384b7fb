package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"

	"github.com/gin-gonic/gin"
)

const msgNoToken = "No token provided. Please log in."

// AuthMiddleware resolves the bearer token to an identity and stores it on
// the request context.
func AuthMiddleware(authUC domain.AuthUsecase, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			reject(c, audit, http.StatusUnauthorized, msgNoToken, "missing_token")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			reject(c, audit, http.StatusUnauthorized, msgNoToken, "missing_token")
			return
		}

		identity, err := authUC.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Kind == apperror.KindUnauthenticated {
				reject(c, audit, appErr.Code, appErr.Message, "invalid_token")
				return
			}
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyIdentity), identity)
		c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := usecase.RequireRole(c.Request.Context(), roles...); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireApprovedCompany blocks companies that are Pending or Rejected.
func RequireApprovedCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := usecase.RequireCompanyApproved(c.Request.Context()); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func reject(c *gin.Context, audit *security.SecurityLogger, code int, message, reason string) {
	if audit != nil {
		audit.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), domain.RequestIDFrom(c.Request.Context()), c.FullPath(), reason)
	}
	response.Abort(c, code, message)
}
