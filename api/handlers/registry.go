package handlers

import (
	"net/http"
	"strings"

	"github.com/openrwa/rwa-chain/api/types"
)

// RegistryHandler serves asset registry reads
type RegistryHandler struct {
	registry types.RegistryService
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(registry types.RegistryService) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// HandleAssets handles GET /v1/assets
func (h *RegistryHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	assets, err := h.registry.GetAssets()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
	})
}

// HandleAssetRoutes dispatches /v1/assets/{assetId}
func (h *RegistryHandler) HandleAssetRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	assetID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/assets/"), "/")
	if assetID == "" {
		h.HandleAssets(w, r)
		return
	}

	asset, err := h.registry.GetAsset(assetID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, asset)
}
