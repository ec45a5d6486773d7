package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"netbuild.opentransit.org/internal/network"
)

type edgeModel struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	LineID string  `json:"lineId"`
	Length float64 `json:"length"`
}

func newEdgeModel(e network.Edge) edgeModel {
	return edgeModel{From: e.From, To: e.To, LineID: e.LineID, Length: e.Length}
}

func (api *RestAPI) edgesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name, ok := api.network(w, ps)
	if !ok {
		return
	}
	g, _ := api.App.Network(name)

	edges := g.Edges()
	out := make([]edgeModel, 0, len(edges))
	for _, e := range edges {
		out = append(out, newEdgeModel(e))
	}
	api.sendJSON(w, out)
}
