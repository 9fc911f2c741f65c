package controllers

import (
	"net/http"

	"notes/notes/utils/jsonutils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonutils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Server is up!"})
}
