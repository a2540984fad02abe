package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/logger"
)

func errorBody(appErr *apperrors.AppError) gin.H {
	return gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, errorBody(appErr))
}

// ErrorHandler renders the last error a handler attached with c.Error,
// unless the handler already wrote a response. Anything that is not an
// AppError becomes INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Get().With(
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unhandled error", "error", err)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("request failed", "code", appErr.Code, "internal", appErr.Internal)
		}

		c.JSON(appErr.StatusCode, errorBody(appErr))
	}
}
