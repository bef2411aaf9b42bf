package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openrwa/rwa-chain/api/handlers"
)

func newTestHandlers() (*handlers.PoolHandler, *handlers.RegistryHandler) {
	svc := NewMockService()
	return handlers.NewPoolHandler(svc, svc, svc), handlers.NewRegistryHandler(svc)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestHandlePools(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePools(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	pools, ok := body["pools"].([]interface{})
	if !ok || len(pools) != 1 {
		t.Fatalf("expected 1 pool, got %v", body["pools"])
	}
}

func TestHandlePoolsMethodNotAllowed(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/v1/pools", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePools(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandlePoolByID(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/pool-1", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePoolRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["pool_id"] != "pool-1" {
		t.Errorf("expected pool-1, got %v", body["pool_id"])
	}
	if body["total_value"] != "10300" {
		t.Errorf("expected total value 10300, got %v", body["total_value"])
	}
}

func TestHandlePoolNotFound(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/pool-99", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePoolRoutes(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlePoolTranches(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/pool-1/tranches", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePoolRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	tranches, ok := body["tranches"].([]interface{})
	if !ok || len(tranches) != 2 {
		t.Fatalf("expected 2 tranches, got %v", body["tranches"])
	}

	// Most senior first
	first := tranches[0].(map[string]interface{})
	if first["class"] != "senior" {
		t.Errorf("expected senior tranche first, got %v", first["class"])
	}
}

func TestHandlePoolListingsWithTrancheScope(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/pool-1/listings?tranche=trn-senior", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePoolRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["scope"] != "trn-senior" {
		t.Errorf("expected scope trn-senior, got %v", body["scope"])
	}
	listings, ok := body["listings"].([]interface{})
	if !ok || len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %v", body["listings"])
	}
}

func TestHandlePoolSettlement(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/pool-1/settlement", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandlePoolRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["total_distributed"] != "10300" {
		t.Errorf("expected total distributed 10300, got %v", body["total_distributed"])
	}
}

func TestHandleUserPositions(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/user/cosmos1alice/positions", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandleUserRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	positions, ok := body["positions"].([]interface{})
	if !ok || len(positions) != 1 {
		t.Fatalf("expected 1 position, got %v", body["positions"])
	}
	position := positions[0].(map[string]interface{})
	if position["shares"] != "7000" {
		t.Errorf("expected 7000 shares, got %v", position["shares"])
	}
}

func TestHandleListingByID(t *testing.T) {
	poolHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/listings/lst-1", nil)
	rec := httptest.NewRecorder()
	poolHandler.HandleListingRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["seller"] != "cosmos1alice" {
		t.Errorf("expected seller cosmos1alice, got %v", body["seller"])
	}
}

func TestHandleAssets(t *testing.T) {
	_, registryHandler := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/assets", nil)
	rec := httptest.NewRecorder()
	registryHandler.HandleAssets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	assets, ok := body["assets"].([]interface{})
	if !ok || len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %v", body["assets"])
	}
}

func TestHandleAssetByID(t *testing.T) {
	_, registryHandler := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/v1/assets/ast-1", nil)
	rec := httptest.NewRecorder()
	registryHandler.HandleAssetRoutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "managed" {
		t.Errorf("expected managed asset, got %v", body["status"])
	}
}

func TestMockServiceUserPositionsAcrossTranches(t *testing.T) {
	svc := NewMockService()

	positions, err := svc.GetUserPositions("cosmos1bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0].Scope != "trn-junior" {
		t.Errorf("expected trn-junior scope, got %s", positions[0].Scope)
	}
}

func TestSharePrice(t *testing.T) {
	if got := sharePrice("10300", "10000"); got != "1.030000" {
		t.Errorf("expected 1.030000, got %s", got)
	}
	if got := sharePrice("100", "0"); got != "0" {
		t.Errorf("expected 0 for zero shares, got %s", got)
	}
	if got := sharePrice("bogus", "10"); got != "0" {
		t.Errorf("expected 0 for bad input, got %s", got)
	}
}
