package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

type RouteDoc struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
	Summary string `json:"summary,omitempty"`
}

// RouteRegistry records every mounted route so /api/routes can list the
// live surface.
type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Handle mounts a handler and records it. methodAndPattern is either a bare
// path or "METHOD /path" for documentation purposes; method dispatch stays
// inside the handlers.
func Handle(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary string, h http.HandlerFunc) {
	parts := strings.SplitN(methodAndPattern, " ", 2)
	method, pattern := "", methodAndPattern
	if len(parts) == 2 {
		method, pattern = parts[0], parts[1]
	}
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary})
	mux.HandleFunc(pattern, h)
}

// RoutesHandler serves GET /api/routes.
func (rr *RouteRegistry) RoutesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"routes": rr.List()})
}
