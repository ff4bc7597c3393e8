package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/simcar/internal/common"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

const memberIDContextKey = "memberID"

func memberIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(memberIDContextKey)
}

// requestLogger logs each request with its X-Request-ID, assigning one when
// the caller did not.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		reqID := c.GetHeader(common.RequestIDHeaderName)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, reqID)

		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(started),
			"request_id", reqID,
		)
	}
}

func requireAuth(members *MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("로그인이 필요합니다."))
			return
		}

		id, err := members.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("인증이 만료되었습니다."))
			return
		}

		c.Set(memberIDContextKey, id)
		c.Next()
	}
}
