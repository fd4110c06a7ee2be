package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

const bearerPrefix = "Bearer "

// Authenticator rejects requests without a valid HS256 bearer token signed
// with secret.
func Authenticator(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		if err := authenticate(parser, secret, c.GetHeader("Authorization")); err != nil {
			zap.S().Named("auth").Debugw("request rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

func authenticate(parser *jwt.Parser, secret []byte, header string) error {
	if header == "" {
		return srvErrors.NewInvalidTokenError("missing authorization header")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return srvErrors.NewInvalidTokenError("authorization header is not a bearer token")
	}

	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	_, err := parser.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return srvErrors.NewInvalidTokenError(err.Error())
	}
	return nil
}
