// Package emailconfig exposes the email configuration REST endpoints.
package emailconfig

import (
	"github.com/gin-gonic/gin"

	"remindly/api/ctxutil"
	"remindly/api/response"
	appemailconfig "remindly/application/emailconfig"
)

type Controller struct {
	service *appemailconfig.ApplicationService
}

func NewController(service *appemailconfig.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	configs := rg.Group("/email-configurations")
	{
		configs.POST("", ctrl.Create)
		configs.GET("", ctrl.List)
		configs.GET("/:id", ctrl.Get)
		configs.PUT("/:id", ctrl.Update)
		configs.POST("/:id/default", ctrl.SetDefault)
		configs.DELETE("/:id", ctrl.Delete)
	}
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req appemailconfig.CreateEmailConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.CreateEmailConfiguration(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleCreated(c, resp)
}

func (ctrl *Controller) Get(c *gin.Context) {
	resp, err := ctrl.service.GetEmailConfiguration(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) List(c *gin.Context) {
	var req appemailconfig.ListEmailConfigurationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.ListEmailConfigurations(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandlePaginated(c, resp, req.Skip, req.Limit, len(resp))
}

func (ctrl *Controller) Update(c *gin.Context) {
	var req appemailconfig.UpdateEmailConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.UpdateEmailConfiguration(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) SetDefault(c *gin.Context) {
	resp, err := ctrl.service.SetDefaultConfiguration(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteEmailConfiguration(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleNoContent(c)
}
