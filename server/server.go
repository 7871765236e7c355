// Package server: the mux router and request handlers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/katalvlaran/dynroute/engine"
	"github.com/katalvlaran/dynroute/roadgraph"
	"github.com/katalvlaran/dynroute/trafficlight"
)

// Server translates HTTP requests into engine calls and engine
// notifications into WebSocket broadcasts.
type Server struct {
	log    *slog.Logger
	e      *engine.Engine
	hub    *hub
	router *mux.Router
}

// New builds the server around a live engine and subscribes the hub to
// its notifications. A nil logger selects slog.Default().
func New(e *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		log: logger,
		e:   e,
		hub: newHub(logger),
	}

	e.OnWeightsChanged(func() { s.hub.broadcast("weights_changed", nil) })
	e.OnPath(func(res engine.PathResult) { s.hub.broadcast("path", res) })
	e.OnSignal(func(id engine.EffectID, state trafficlight.State, remaining int) {
		s.hub.broadcast("signal", map[string]any{
			"effect_id":   string(id),
			"state":       state.String(),
			"remaining_s": remaining,
		})
	})

	r := mux.NewRouter()
	r.HandleFunc("/effects", s.handleAddEffect).Methods(http.MethodPost)
	r.HandleFunc("/effects", s.handleListEffects).Methods(http.MethodGet)
	r.HandleFunc("/effects/{id}", s.handleGetEffect).Methods(http.MethodGet)
	r.HandleFunc("/effects/{id}", s.handleRemoveEffect).Methods(http.MethodDelete)
	r.HandleFunc("/route", s.handleSelectRoute).Methods(http.MethodPut)
	r.HandleFunc("/route", s.handleGetRoute).Methods(http.MethodGet)
	r.HandleFunc("/route", s.handleClearRoute).Methods(http.MethodDelete)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.hub.handleWS).Methods(http.MethodGet)
	s.router = r

	return s
}

// Router returns the HTTP handler for mounting.
func (s *Server) Router() http.Handler { return s.router }

// Close disconnects every WebSocket client. The engine's lifecycle
// belongs to the caller.
func (s *Server) Close() { s.hub.close() }

func (s *Server) handleAddEffect(w http.ResponseWriter, r *http.Request) {
	var req effectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadEffectPayload, err))

		return
	}

	eff, err := req.toEffect()
	if err != nil {
		s.writeError(w, err)

		return
	}

	id, err := s.e.AddEffect(eff)
	if err != nil {
		s.writeError(w, err)

		return
	}
	s.log.Info("effect added", "id", id, "kind", req.Kind)
	s.writeJSON(w, http.StatusCreated, idResponse{ID: string(id)})
}

func (s *Server) handleListEffects(w http.ResponseWriter, _ *http.Request) {
	ids := s.e.EffectIDs()
	views := make([]effectView, 0, len(ids))
	for _, id := range ids {
		view, err := s.effectView(id)
		if err != nil {
			// Removed concurrently between the listing and the lookup.
			continue
		}
		views = append(views, view)
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetEffect(w http.ResponseWriter, r *http.Request) {
	view, err := s.effectView(engine.EffectID(mux.Vars(r)["id"]))
	if err != nil {
		s.writeError(w, err)

		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRemoveEffect(w http.ResponseWriter, r *http.Request) {
	id := engine.EffectID(mux.Vars(r)["id"])
	if err := s.e.RemoveEffect(id); err != nil {
		s.writeError(w, err)

		return
	}
	s.log.Info("effect removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadEffectPayload, err))

		return
	}

	start, err := s.resolveEndpoint(req.Start, req.StartPoint)
	if err != nil {
		s.writeError(w, err)

		return
	}
	end, err := s.resolveEndpoint(req.End, req.EndPoint)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if err := s.e.SelectEndpoints(start, end); err != nil {
		s.writeError(w, err)

		return
	}
	s.log.Info("route selected", "start", start, "end", end)
	s.writeRoute(w)
}

func (s *Server) handleGetRoute(w http.ResponseWriter, _ *http.Request) {
	s.writeRoute(w)
}

func (s *Server) handleClearRoute(w http.ResponseWriter, _ *http.Request) {
	s.e.ClearEndpoints()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	g := s.e.Graph()
	s.writeJSON(w, http.StatusOK, healthView{
		Status: "ok",
		Nodes:  g.NodeCount(),
		Edges:  g.EdgeCount(),
	})
}

// resolveEndpoint turns a request endpoint into a node id. An explicit
// id wins over a coordinate; coordinates snap to the nearest node
// within the engine's snap threshold.
func (s *Server) resolveEndpoint(id string, p *pointPayload) (string, error) {
	if id != "" {
		return id, nil
	}
	if p == nil {
		return "", fmt.Errorf("%w: endpoint requires a node id or a point", errBadEffectPayload)
	}

	return s.e.Graph().NearestNode(p.point(), s.e.Options().SnapThreshold)
}

// effectView assembles the API view, attaching signal status for
// traffic lights.
func (s *Server) effectView(id engine.EffectID) (effectView, error) {
	eff, err := s.e.Effect(id)
	if err != nil {
		return effectView{}, err
	}

	view := effectView{ID: string(id), Kind: kindOf(eff)}
	if _, ok := eff.(engine.TrafficLight); ok {
		state, remaining, err := s.e.SignalState(id)
		if err != nil {
			return effectView{}, err
		}
		view.Signal = &engine.SignalStatus{State: state.String(), Remaining: remaining}
	}

	return view, nil
}

// writeRoute answers with the current selection and search outcome.
func (s *Server) writeRoute(w http.ResponseWriter) {
	start, end, ok := s.e.Endpoints()
	if !ok {
		s.writeError(w, engine.ErrNoSelection)

		return
	}
	res, err := s.e.CurrentPath()
	if err != nil {
		s.writeError(w, err)

		return
	}
	s.writeJSON(w, http.StatusOK, routeView{Start: start, End: end, Result: res})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}

// writeError maps engine and payload errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadEffectPayload),
		errors.Is(err, engine.ErrNilEffect),
		errors.Is(err, trafficlight.ErrBadDuration),
		errors.Is(err, trafficlight.ErrBadRate):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrEffectNotFound),
		errors.Is(err, engine.ErrNodeNotFound),
		errors.Is(err, engine.ErrNoSelection),
		errors.Is(err, engine.ErrNotTrafficLight),
		errors.Is(err, roadgraph.ErrNoNearbyNode):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrEngineClosed):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
