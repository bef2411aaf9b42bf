package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openrwa/rwa-chain/api/types"
)

// PoolHandler serves pool, tranche, position, and listing reads
type PoolHandler struct {
	pools       types.PoolService
	market      types.MarketService
	settlements types.SettlementService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(pools types.PoolService, market types.MarketService, settlements types.SettlementService) *PoolHandler {
	return &PoolHandler{
		pools:       pools,
		market:      market,
		settlements: settlements,
	}
}

// HandlePools handles GET /v1/pools
func (h *PoolHandler) HandlePools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	pools, err := h.pools.GetPools()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pools": pools,
	})
}

// HandlePoolRoutes dispatches /v1/pools/{poolId} and its sub-resources
func (h *PoolHandler) HandlePoolRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/pools/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "Pool ID required")
		return
	}
	poolID := parts[0]

	if len(parts) == 1 {
		h.getPool(w, poolID)
		return
	}

	switch parts[1] {
	case "tranches":
		h.getTranches(w, poolID)
	case "positions":
		h.getPositions(w, poolID)
	case "listings":
		h.getListings(w, r, poolID)
	case "settlement":
		h.getSettlement(w, poolID)
	default:
		writeError(w, http.StatusNotFound, "Unknown pool resource: "+parts[1])
	}
}

// HandleListingRoutes dispatches /v1/listings/{listingId}
func (h *PoolHandler) HandleListingRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	listingID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/listings/"), "/")
	if listingID == "" {
		writeError(w, http.StatusBadRequest, "Listing ID required")
		return
	}

	listing, err := h.market.GetListing(listingID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// HandleUserRoutes dispatches /v1/user/{address}/positions
func (h *PoolHandler) HandleUserRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/user/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "positions" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	investor := parts[0]

	positions, err := h.pools.GetUserPositions(investor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"investor":  investor,
		"positions": positions,
	})
}

func (h *PoolHandler) getPool(w http.ResponseWriter, poolID string) {
	pool, err := h.pools.GetPool(poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

func (h *PoolHandler) getTranches(w http.ResponseWriter, poolID string) {
	tranches, err := h.pools.GetTranches(poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pool_id":  poolID,
		"tranches": tranches,
	})
}

func (h *PoolHandler) getPositions(w http.ResponseWriter, poolID string) {
	positions, err := h.pools.GetPositions(poolID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scope":     poolID,
		"positions": positions,
	})
}

// getListings serves the listing book of a pool; `?tranche=` narrows
// the scope to a single tranche.
func (h *PoolHandler) getListings(w http.ResponseWriter, r *http.Request, poolID string) {
	scope := poolID
	if tranche := r.URL.Query().Get("tranche"); tranche != "" {
		scope = tranche
	}

	listings, err := h.market.GetListings(scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scope":    scope,
		"listings": listings,
	})
}

func (h *PoolHandler) getSettlement(w http.ResponseWriter, poolID string) {
	settlement, err := h.settlements.GetSettlement(poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
