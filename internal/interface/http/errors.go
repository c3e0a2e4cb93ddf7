package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/pkg/response"
	"github.com/oksasatya/go-community-events/pkg/validation"
)

var statusByKind = map[application.Kind]int{
	application.KindNotFound:        http.StatusNotFound,
	application.KindUnauthorized:    http.StatusForbidden,
	application.KindInvalidState:    http.StatusConflict,
	application.KindInvalidArgument: http.StatusBadRequest,
	application.KindInternal:        http.StatusInternalServerError,
}

// writeError renders a service error. Internal causes are logged and never leave the process.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := application.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	var appErr *application.Error
	if kind == application.KindInternal || !errors.As(err, &appErr) {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal error", nil)
		return
	}

	detail := gin.H{"kind": appErr.Kind}
	if appErr.Entity != "" {
		detail["entity"] = appErr.Entity
	}
	response.Error[any](c, status, appErr.Message, detail)
}

func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func actorID(c *gin.Context) string {
	return c.GetString("userID")
}
