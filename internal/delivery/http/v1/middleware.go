package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const uidCtxKey = "uid"

// Every auth failure renders the same generic 401 so the response
// never leaks whether the header, the prefix or the token was bad.
const unauthorizedMessage = "invalid or expired token"

// HandleAuthMiddleware is the authorization guard: it extracts the
// bearer token, resolves it to a uid via the identity provider and
// stores the uid in the request context. It runs before every route
// except /signup and /login.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("malformed authorization header")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	uid, err := h.verifier.VerifyToken(c, parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("token verification failed")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	c.Set(uidCtxKey, uid)
	c.Next()
}

func uidFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(uidCtxKey)
	if !exists {
		return "", false
	}
	uid, ok := value.(string)
	return uid, ok && uid != ""
}
