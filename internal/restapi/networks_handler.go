package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type networkSummary struct {
	Name          string `json:"name"`
	Nodes         int    `json:"nodes"`
	Edges         int    `json:"edges"`
	IsolatedNodes int    `json:"isolatedNodes"`
}

func (api *RestAPI) networksHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	names := api.App.NetworkNames()

	summaries := make([]networkSummary, 0, len(names))
	for _, name := range names {
		g, ok := api.App.Network(name)
		if !ok {
			continue
		}
		summaries = append(summaries, networkSummary{
			Name:          name,
			Nodes:         g.NodeCount(),
			Edges:         g.EdgeCount(),
			IsolatedNodes: g.IsolatedCount(),
		})
	}
	api.sendJSON(w, summaries)
}

func (api *RestAPI) networkHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name, ok := api.network(w, ps)
	if !ok {
		return
	}
	g, _ := api.App.Network(name)

	api.sendJSON(w, networkSummary{
		Name:          name,
		Nodes:         g.NodeCount(),
		Edges:         g.EdgeCount(),
		IsolatedNodes: g.IsolatedCount(),
	})
}
