package restapi

import (
	"encoding/json"
	"net/http"

	"netbuild.opentransit.org/internal/logging"
)

type errorResponse struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (api *RestAPI) sendJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.LogError(api.App.Logger, "failed to encode response", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	response := errorResponse{Code: http.StatusNotFound, Text: "resource not found"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.App.Logger, "failed to encode not-found response", err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, err error) {
	logging.LogError(api.App.Logger, "server error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	response := errorResponse{Code: http.StatusInternalServerError, Text: "internal server error"}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		logging.LogError(api.App.Logger, "failed to encode error response", encodeErr)
	}
}
