package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ken-eddy/salesApp/checkout"
)

const (
	salesPersonKey = "salesperson"
	roleKey        = "role"
)

// Identity resolves the acting user from an HS256 token in the "token" cookie
// or an Authorization bearer header. The first candidate that verifies wins,
// so a stale cookie does not hide a valid header. Requests without a valid
// token continue as unauthenticated; it never rejects a request.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		for _, tokenString := range candidateTokens(c) {
			claims, ok := verify(secret, tokenString)
			if !ok {
				continue
			}
			if username, ok := claims["username"].(string); ok && username != "" {
				c.Set(salesPersonKey, username)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(roleKey, strings.ToLower(role))
			}
			break
		}
		c.Next()
	}
}

func verify(secret, tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func candidateTokens(c *gin.Context) []string {
	var out []string
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		out = append(out, cookie)
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if bearer := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); bearer != "" {
			out = append(out, bearer)
		}
	}
	return out
}

// SalesPerson returns the authenticated username, or the default salesperson
// label for anonymous requests.
func SalesPerson(c *gin.Context) string {
	if name := c.GetString(salesPersonKey); name != "" {
		return name
	}
	return checkout.DefaultSalesPerson
}

func RoleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(salesPersonKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token required"})
			return
		}
		if c.GetString(roleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden - " + role + " role required"})
			return
		}
		c.Next()
	}
}
