// Package reminder exposes the reminder REST endpoints, including
// recipient management.
package reminder

import (
	"github.com/gin-gonic/gin"

	"remindly/api/ctxutil"
	"remindly/api/response"
	appreminder "remindly/application/reminder"
)

type Controller struct {
	service *appreminder.ApplicationService
}

func NewController(service *appreminder.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	reminders := rg.Group("/reminders")
	{
		reminders.POST("", ctrl.Create)
		reminders.GET("", ctrl.List)
		reminders.GET("/:id", ctrl.Get)
		reminders.PUT("/:id", ctrl.Update)
		reminders.DELETE("/:id", ctrl.Delete)
		reminders.POST("/:id/recipients/:clientId", ctrl.AddRecipient)
		reminders.DELETE("/:id/recipients/:clientId", ctrl.RemoveRecipient)
	}
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req appreminder.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.CreateReminder(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleCreated(c, resp)
}

func (ctrl *Controller) Get(c *gin.Context) {
	resp, err := ctrl.service.GetReminder(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) List(c *gin.Context) {
	var req appreminder.ListRemindersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.ListReminders(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandlePaginated(c, resp, req.Skip, req.Limit, len(resp))
}

func (ctrl *Controller) Update(c *gin.Context) {
	var req appreminder.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.UpdateReminder(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteReminder(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleNoContent(c)
}

func (ctrl *Controller) AddRecipient(c *gin.Context) {
	resp, err := ctrl.service.AddRecipient(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), c.Param("clientId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) RemoveRecipient(c *gin.Context) {
	resp, err := ctrl.service.RemoveRecipient(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), c.Param("clientId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}
