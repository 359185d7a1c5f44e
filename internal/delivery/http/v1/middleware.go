package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/services"
)

const userIDCtxKey = "user_id"

const authorizationHeader = "Authorization"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	user, err := h.auth.Authenticate(c, c.GetHeader(authorizationHeader))
	if err != nil {
		if services.IsUnauthenticated(err) {
			h.logger.Warn().
				Err(err).
				Str("path", c.FullPath()).
				Msg("unauthenticated request")
			abort(c, newServiceError(err))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to authenticate request")
		abort(c, newServiceError(err))
		return
	}

	c.Set(userIDCtxKey, user.ID)
	c.Next()
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
