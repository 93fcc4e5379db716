package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/esimov/spotlight"
	"github.com/esimov/spotlight/rectset"
)

type maskRequest struct {
	Container rectset.Rect   `json:"container"`
	Holes     []rectset.Rect `json:"holes"`
}

type maskResponse struct {
	Panels []rectset.Rect      `json:"panels"`
	Stats  spotlight.MaskStats `json:"stats"`
}

type layoutMaskRequest struct {
	Layout    json.RawMessage `json:"layout"`
	Container string          `json:"container"`
	Holes     []string        `json:"holes"`
}

type layoutMaskResult struct {
	spotlight.Mask
	Stats spotlight.MaskStats `json:"stats"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) maskHandler(w http.ResponseWriter, r *http.Request) {
	var req maskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Container.IsFinite() {
		s.writeError(w, http.StatusBadRequest, errors.New("container must be finite"))
		return
	}
	for i, h := range req.Holes {
		if !h.IsFinite() {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("hole %d must be finite", i))
			return
		}
	}

	mask := spotlight.NewMask(req.Container, req.Holes...)
	s.writeJSON(w, http.StatusOK, maskResponse{
		Panels: mask.Panels,
		Stats:  spotlight.Stats(mask),
	})
}

func (s *Server) layoutMaskHandler(w http.ResponseWriter, r *http.Request) {
	var req layoutMaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Layout) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("missing layout"))
		return
	}

	layout, err := spotlight.ParseLayout(req.Layout, "request")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	container := req.Container
	if container == "" {
		container = spotlight.DefaultContainer
	}
	masks, err := spotlight.ComputeMask(layout, container, req.Holes...)
	if err != nil {
		if errors.Is(err, spotlight.ErrNoContainer) || errors.Is(err, spotlight.ErrUnsupportedSelector) {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]layoutMaskResult, 0, len(masks))
	for _, m := range masks {
		out = append(out, layoutMaskResult{Mask: m, Stats: spotlight.Stats(m)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode JSON response", "error", err)
	}
}
