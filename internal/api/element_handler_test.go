package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/molweight-api/internal/api/shared"
	"github.com/phrazzld/molweight-api/internal/domain"
	"github.com/phrazzld/molweight-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenElementStore fails every read.
type brokenElementStore struct{}

func (brokenElementStore) ListAll(ctx context.Context) ([]domain.Element, error) {
	return nil, store.NewStoreError("element", "list", "query failed", errors.New("connection reset"))
}

func (brokenElementStore) GetBySymbol(ctx context.Context, symbol string) (*domain.Element, error) {
	return nil, store.NewStoreError("element", "get", "query failed", errors.New("connection reset"))
}

func elementRouter(elements store.ElementStore) http.Handler {
	h := NewElementHandler(elements)
	r := chi.NewRouter()
	r.Get("/api/elements", h.ListElements)
	r.Get("/api/elements/{symbol}", h.GetElement)
	return r
}

func TestElementHandler_List(t *testing.T) {
	router := elementRouter(testElementStore())

	symbols := func(resp ElementListResponse) []string {
		out := make([]string, len(resp.Elements))
		for i, e := range resp.Elements {
			out[i] = e.Symbol
		}
		return out
	}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "whole registry", target: "/api/elements", want: []string{"H", "C", "N", "O", "Cl", "Ca", "Co", "Cu"}},
		{name: "search by symbol ignores case", target: "/api/elements?search=CL", want: []string{"Cl"}},
		{name: "search by name", target: "/api/elements?search=copp", want: []string{"Cu"}},
		{name: "search matches symbol or name", target: "/api/elements?search=co", want: []string{"Co", "Cu"}},
		{name: "blank search lists all", target: "/api/elements?search=%20", want: []string{"H", "C", "N", "O", "Cl", "Ca", "Co", "Cu"}},
		{name: "no match", target: "/api/elements?search=xenon", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.target, "", uuid.Nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp ElementListResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, symbols(resp))
			assert.Equal(t, len(tt.want), resp.Count)
		})
	}
}

func TestElementHandler_Get(t *testing.T) {
	router := elementRouter(testElementStore())

	t.Run("known symbol", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/elements/Co", "", uuid.Nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp ElementResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, ElementResponse{
			Symbol:       "Co",
			Name:         "Cobalt",
			AtomicNumber: 27,
			AtomicWeight: "58.9332",
		}, resp)
	})

	t.Run("weight keeps four places", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/elements/H", "", uuid.Nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ElementResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "1.0080", resp.AtomicWeight)
	})

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantMessage string
	}{
		{name: "symbols are case sensitive", target: "/api/elements/CO", wantStatus: http.StatusNotFound, wantMessage: "Element not found"},
		{name: "unknown symbol", target: "/api/elements/Xx", wantStatus: http.StatusNotFound, wantMessage: "Element not found"},
		{name: "symbol too long", target: "/api/elements/Hydrogen", wantStatus: http.StatusBadRequest, wantMessage: "Invalid element symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.target, "", uuid.Nil)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Error)
		})
	}
}

func TestElementHandler_StoreFailure(t *testing.T) {
	router := elementRouter(brokenElementStore{})

	for _, target := range []string{"/api/elements", "/api/elements/H"} {
		rr := doRequest(t, router, http.MethodGet, target, "", uuid.Nil)
		require.Equal(t, http.StatusInternalServerError, rr.Code, target)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotContains(t, resp.Error, "connection reset")
	}
}
