package response

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"remindly/domain/shared"
	"remindly/pkg/errors"
	"remindly/pkg/logger"
)

// HandleBindingError reports a request that failed JSON or query
// binding as a 400 with the validation code.
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Code:      string(errors.CodeValidation),
		Message:   err.Error(),
		RequestID: requestID(c),
	})
}

// HandleError maps any error coming out of the application layer to an
// HTTP status and the envelope. Internal errors are logged with their
// captured stack and masked in the reply.
func HandleError(c *gin.Context, err error) {
	appErr := errors.FromDomainError(err)
	status := appErr.HTTPStatusCode()

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String(RequestIDKey, requestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
			zap.Strings("stack", extractStack(err)),
		)
	}

	c.JSON(status, Response{
		Success:   false,
		Code:      string(appErr.Code),
		Message:   userMessage(appErr),
		Error:     errorBody(appErr),
		RequestID: requestID(c),
	})
}

func userMessage(appErr *errors.AppError) string {
	if appErr.Code == errors.CodeInternal {
		return "internal server error"
	}
	return appErr.Message
}

func errorBody(appErr *errors.AppError) interface{} {
	body := map[string]string{"code": string(appErr.Code)}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	return body
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stderrors.As(err, &stacker) {
		return stacker.Stack()
	}
	return nil
}
