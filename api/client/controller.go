// Package client exposes the client REST endpoints.
package client

import (
	"github.com/gin-gonic/gin"

	"remindly/api/ctxutil"
	"remindly/api/response"
	appclient "remindly/application/client"
)

type Controller struct {
	service *appclient.ApplicationService
}

func NewController(service *appclient.ApplicationService) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", ctrl.Create)
		clients.GET("", ctrl.List)
		clients.GET("/:id", ctrl.Get)
		clients.PUT("/:id", ctrl.Update)
		clients.DELETE("/:id", ctrl.Delete)
	}
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req appclient.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.CreateClient(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleCreated(c, resp)
}

func (ctrl *Controller) Get(c *gin.Context) {
	resp, err := ctrl.service.GetClient(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) List(c *gin.Context) {
	var req appclient.ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.ListClients(ctxutil.RequestContext(c), ctxutil.UserID(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandlePaginated(c, resp, req.Skip, req.Limit, len(resp))
}

func (ctrl *Controller) Update(c *gin.Context) {
	var req appclient.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(c, err)
		return
	}

	resp, err := ctrl.service.UpdateClient(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleSuccess(c, resp)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteClient(ctxutil.RequestContext(c), ctxutil.UserID(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.HandleNoContent(c)
}
