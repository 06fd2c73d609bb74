// Package router assembles the versioned API route tree.
package router

import (
	"github.com/gin-gonic/gin"
)

// APIVersion is the current API version prefix
const APIVersion = "v1"

// RouteRegistrar is implemented by every handler that owns a route group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects handlers and mounts them under /api/v1
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// New creates a router on the given engine
func New(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register adds handlers to be mounted on Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registered handler on the versioned API group
func (r *Router) Setup() *gin.Engine {
	api := r.engine.Group("/api")
	versioned := api.Group("/" + APIVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(versioned)
	}

	return r.engine
}
