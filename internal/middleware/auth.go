package middleware

import (
	"net/http"
	"strings"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/policy"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/session"

	"github.com/gin-gonic/gin"
)

const SessionKey = "session"

// SessionAuth resolves the Bearer token against the redis session store on
// every protected route and stores the session data in the context.
func SessionAuth(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Auth("Não autorizado"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		sess, err := store.Get(c.Request.Context(), token)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Auth("Sessão inválida ou expirada"))
			return
		}

		c.Set(SessionKey, sess)
		c.Set("session_token", token)
		c.Next()
	}
}

// RequireAdmin rejects requests whose session is not allowed to mutate.
// The decision itself lives in the policy package.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if d := policy.Decide(sess, policy.ActionMutate, ""); !d.Allow {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Forbidden(d.Reason))
			return
		}
		c.Next()
	}
}

// GetSession is a helper to retrieve the typed session from the Gin context.
func GetSession(c *gin.Context) *session.Data {
	sess, _ := c.MustGet(SessionKey).(*session.Data)
	return sess
}

// GetSessionToken returns the raw bearer token of the current request.
func GetSessionToken(c *gin.Context) string {
	return c.GetString("session_token")
}
