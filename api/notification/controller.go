// Package notification exposes the notification REST endpoints.
package notification

import (
	"github.com/gin-gonic/gin"

	"remindly/api/ctxutil"
	"remindly/api/response"
	appnotification "remindly/application/notification"
)

type Controller struct {
	service *appnotification.ApplicationService
}

func NewController(service *appnotification.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.POST("/generate", ctrl.Generate)
		notifications.GET("", ctrl.List)
		notifications.GET("/:id", ctrl.Get)
		notifications.POST("/:id/sent", ctrl.MarkSent)
		notifications.POST("/:id/failed", ctrl.MarkFailed)
		notifications.POST("/:id/cancel", ctrl.Cancel)
	}
}

func (ctrl *Controller) Generate(c *gin.Context) {
	var req appnotification.GenerateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.GenerateForReminder(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleCreated(c, resp)
}

func (ctrl *Controller) Get(c *gin.Context) {
	resp, err := ctrl.service.GetNotification(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) List(c *gin.Context) {
	var req appnotification.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.ListNotifications(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandlePaginated(c, resp, req.Skip, req.Limit, len(resp))
}

func (ctrl *Controller) MarkSent(c *gin.Context) {
	resp, err := ctrl.service.MarkSent(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

type markFailedRequest struct {
	ErrorMessage string `json:"error_message" binding:"required"`
}

func (ctrl *Controller) MarkFailed(c *gin.Context) {
	var req markFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.MarkFailed(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), req.ErrorMessage)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) Cancel(c *gin.Context) {
	resp, err := ctrl.service.Cancel(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}
