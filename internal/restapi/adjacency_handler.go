package restapi

import (
	"bytes"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"netbuild.opentransit.org/internal/export"
)

func (api *RestAPI) adjacencyHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name, ok := api.network(w, ps)
	if !ok {
		return
	}

	if cached, err := api.adjacencyCache.Get(name); err == nil {
		api.sendAdjacency(w, cached.([]byte))
		return
	}

	g, _ := api.App.Network(name)
	var buf bytes.Buffer
	if err := export.WriteAdjacency(g, &buf); err != nil {
		api.serverErrorResponse(w, err)
		return
	}

	data := buf.Bytes()
	_ = api.adjacencyCache.Set(name, data)
	api.sendAdjacency(w, data)
}

func (api *RestAPI) sendAdjacency(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	if _, err := w.Write(data); err != nil {
		api.serverErrorResponse(w, err)
	}
}
