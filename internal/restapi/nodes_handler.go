package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"netbuild.opentransit.org/internal/network"
)

type nodeModel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Degree int     `json:"degree"`
}

func newNodeModel(g *network.Graph, n network.Node) nodeModel {
	return nodeModel{
		ID:     n.ID,
		Name:   n.Name,
		X:      n.Location[0],
		Y:      n.Location[1],
		Degree: g.Degree(n.ID),
	}
}

func (api *RestAPI) nodesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name, ok := api.network(w, ps)
	if !ok {
		return
	}
	g, _ := api.App.Network(name)

	nodes := g.Nodes()
	out := make([]nodeModel, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, newNodeModel(g, n))
	}
	api.sendJSON(w, out)
}

type nodeDetail struct {
	nodeModel
	Edges []edgeModel `json:"edges"`
}

func (api *RestAPI) nodeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name, ok := api.network(w, ps)
	if !ok {
		return
	}
	g, _ := api.App.Network(name)

	n, ok := g.Node(ps.ByName("id"))
	if !ok {
		api.sendNotFound(w)
		return
	}

	detail := nodeDetail{nodeModel: newNodeModel(g, n), Edges: []edgeModel{}}
	for _, neighbor := range g.Neighbors(n.ID) {
		if e, ok := g.Edge(n.ID, neighbor); ok {
			detail.Edges = append(detail.Edges, newEdgeModel(e))
		}
	}
	api.sendJSON(w, detail)
}
