// Package http exposes the user service over gin routes.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/user-service/internal/shared/errors"
	"github.com/Apurer/user-service/internal/users/ports"
)

// UserAPI holds the route handlers for the /users resource.
type UserAPI struct {
	service ports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service ports.Service) UserAPI {
	return UserAPI{service: service}
}

// NewRouter builds the gin engine with middleware and all user routes
// registered. Middleware must be passed here so it applies to the routes.
func NewRouter(api UserAPI, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	users := router.Group("/users")
	users.POST("", api.CreateUser)
	users.GET("/:id", api.GetUser)
	users.PUT("/:id", api.UpdateUser)
	users.DELETE("/:id", api.DeleteUser)

	router.NoRoute(func(c *gin.Context) {
		apierrors.RespondError(c, apierrors.ErrRouteNotFound)
	})
	return router
}

// Post /users
func (api UserAPI) CreateUser(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	user, err := api.service.Create(c.Request.Context(), payload)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	apierrors.RespondSuccess(c, nethttp.StatusCreated, user)
}

// Get /users/:id
func (api UserAPI) GetUser(c *gin.Context) {
	user, err := api.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	apierrors.RespondSuccess(c, nethttp.StatusOK, user)
}

// Put /users/:id
func (api UserAPI) UpdateUser(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	user, err := api.service.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	apierrors.RespondSuccess(c, nethttp.StatusOK, user)
}

// Delete /users/:id
func (api UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.RespondError(c, err)
		return
	}
	apierrors.RespondSuccess(c, nethttp.StatusNoContent, nil)
}

func bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.RespondError(c, apierrors.ErrInvalidPayload)
		return nil, false
	}
	return payload, true
}
