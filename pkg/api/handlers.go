package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"mime"
	"net/http"
	"strconv"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/geo"
	"campus_paths/pkg/render"
	"campus_paths/pkg/selection"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	sessions *Sessions
	metrics  *Metrics
}

// NewHandlers creates handlers backed by the given session store.
func NewHandlers(sessions *Sessions, metrics *Metrics) *Handlers {
	return &Handlers{
		sessions: sessions,
		metrics:  metrics,
	}
}

// HandleBuildings handles GET /api/v1/buildings.
func (h *Handlers) HandleBuildings(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	resp := BuildingsResponse{Buildings: []OptionJSON{}}
	for _, b := range sess.Ctrl.Catalog().Buildings() {
		resp.Buildings = append(resp.Buildings, optionJSON(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSelection handles GET /api/v1/selection.
func (h *Handlers) HandleSelection(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	writeJSON(w, http.StatusOK, h.view(sess))
}

// HandleSelectStart handles POST /api/v1/selection/start.
func (h *Handlers) HandleSelectStart(w http.ResponseWriter, r *http.Request) {
	h.handleSelect(w, r, "start", (*selection.Controller).SelectStart)
}

// HandleSelectEnd handles POST /api/v1/selection/end.
func (h *Handlers) HandleSelectEnd(w http.ResponseWriter, r *http.Request) {
	h.handleSelect(w, r, "end", (*selection.Controller).SelectEnd)
}

func (h *Handlers) handleSelect(w http.ResponseWriter, r *http.Request, field string, set func(*selection.Controller, string)) {
	var req SelectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	sess := h.sessions.Resolve(w, r)
	if req.Name != "" {
		if _, ok := sess.Ctrl.Catalog().Lookup(req.Name); !ok {
			writeError(w, http.StatusBadRequest, "unknown_building", field)
			return
		}
	}
	set(sess.Ctrl, req.Name)
	h.metrics.action("select_"+field, "ok")
	writeJSON(w, http.StatusOK, h.view(sess))
}

// HandleGo handles POST /api/v1/selection/go.
func (h *Handlers) HandleGo(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	err := sess.Ctrl.Go(r.Context())
	h.respondAction(w, sess, "go", err)
}

// HandleReverse handles POST /api/v1/selection/reverse.
func (h *Handlers) HandleReverse(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	err := sess.Ctrl.Reverse()
	h.respondAction(w, sess, "reverse", err)
}

// HandleClear handles POST /api/v1/selection/clear.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	sess.Ctrl.Clear()
	h.respondAction(w, sess, "clear", nil)
}

// respondAction maps a controller outcome to a status. Validation failures
// are ordinary UI state and answer 200 with the alert set.
func (h *Handlers) respondAction(w http.ResponseWriter, sess *Session, action string, err error) {
	status := http.StatusOK
	outcome := "ok"
	switch {
	case err == nil:
	case selection.IsValidation(err):
		outcome = "invalid"
	case errors.Is(err, selection.ErrStale):
		status, outcome = http.StatusConflict, "stale"
	case errors.Is(err, selection.ErrClosed):
		status, outcome = http.StatusGone, "closed"
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		status, outcome = http.StatusServiceUnavailable, "timeout"
	default:
		status, outcome = http.StatusBadGateway, "service_error"
	}
	h.metrics.action(action, outcome)
	writeJSON(w, status, h.view(sess))
}

// HandleNearest handles GET /api/v1/selection/nearest?lat=..&lng=..
func (h *Handlers) HandleNearest(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	ll := geo.LatLng{Lat: lat, Lng: lng}
	if err := validateCoord(ll); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "")
		return
	}

	sess := h.sessions.Resolve(w, r)
	x, y := h.sessions.Projection().FromLatLng(ll)
	b, ok := sess.Ctrl.Catalog().Nearest(campus.Point{X: x, Y: y})
	if !ok {
		writeError(w, http.StatusNotFound, "no_buildings", "")
		return
	}
	writeJSON(w, http.StatusOK, NearestResponse{Building: optionJSON(b), X: x, Y: y})
}

// HandleRouteGeoJSON handles GET /api/v1/route.geojson.
func (h *Handlers) HandleRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	fc := sess.View.Scene().FeatureCollection()
	w.Header().Set("Content-Type", "application/geo+json")
	json.NewEncoder(w).Encode(fc)
}

// HandleRouteOSM handles GET /api/v1/route.osm.
func (h *Handlers) HandleRouteOSM(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	st := sess.Ctrl.State()
	name := ""
	if st.Route != nil {
		name = fmt.Sprintf("%s to %s", st.StartValue, st.EndValue)
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="route.osm"`)
	if err := render.EncodeOSM(w, sess.View.Path(), sess.View.Projection(), name); err != nil {
		log.Printf("session %s: osm export: %v", sess.ID, err)
	}
}

// HandleRoutePNG handles GET /api/v1/route.png.
func (h *Handlers) HandleRoutePNG(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	st := sess.Ctrl.State()
	opts := render.DefaultPNGOptions()
	if st.Route != nil {
		opts.StartLabel, opts.EndLabel = st.StartValue, st.EndValue
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.EncodePNG(w, sess.View.Scene(), opts); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Sessions: h.sessions.Len()})
}

func (h *Handlers) view(sess *Session) SelectionResponse {
	st := sess.Ctrl.State()
	return SelectionResponse{
		Start:  st.StartValue,
		End:    st.EndValue,
		Alert:  st.AlertMessage,
		Notice: sess.TakeNotice(),
		Path:   sess.View.Path(),
		Scene:  sess.View.Scene(),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return errors.New("content type must be application/json")
	}
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(v)
}

func validateCoord(ll geo.LatLng) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
