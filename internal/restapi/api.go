// Package restapi exposes built networks over a small read-only HTTP API,
// intended for inspecting a pipeline run: node/edge listings, per-node
// adjacency and the exported adjacency matrix.
package restapi

import (
	"net/http"

	"github.com/bluele/gcache"
	"github.com/julienschmidt/httprouter"

	"netbuild.opentransit.org/internal/app"
)

// RestAPI serves the built networks held by the application.
type RestAPI struct {
	App *app.Application

	// adjacencyCache holds rendered adjacency matrices; they are immutable for
	// the lifetime of a pipeline run and quadratic in node count to rebuild.
	adjacencyCache gcache.Cache
}

func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		App:            application,
		adjacencyCache: gcache.New(16).LRU().Build(),
	}
}

// Handler returns the fully wired HTTP handler: routes plus compression, rate
// limiting and request logging middleware.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/api/networks", api.networksHandler)
	router.GET("/api/network/:name", api.networkHandler)
	router.GET("/api/network/:name/nodes", api.nodesHandler)
	router.GET("/api/network/:name/node/:id", api.nodeHandler)
	router.GET("/api/network/:name/edges", api.edgesHandler)
	router.GET("/api/network/:name/adjacency.csv", api.adjacencyHandler)

	handler := applyRateLimitMiddleware(router, 50)
	handler = applyGzipMiddleware(handler)
	handler = applyRequestLogging(handler, api.App.Logger)
	return handler
}

// network resolves the :name route parameter against the application registry.
func (api *RestAPI) network(w http.ResponseWriter, ps httprouter.Params) (string, bool) {
	name := ps.ByName("name")
	if _, ok := api.App.Network(name); !ok {
		api.sendNotFound(w)
		return "", false
	}
	return name, true
}
