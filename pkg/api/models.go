package api

import (
	"campus_paths/pkg/campus"
	"campus_paths/pkg/render"
)

// SelectRequest is the JSON body for POST /api/v1/selection/start and /end.
// An empty name clears the pick.
type SelectRequest struct {
	Name string `json:"name"`
}

// OptionJSON is one dropdown entry.
type OptionJSON struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Label     string `json:"label"`
}

// BuildingsResponse is the JSON response for GET /api/v1/buildings.
type BuildingsResponse struct {
	Buildings []OptionJSON `json:"buildings"`
}

// SelectionResponse is the view model returned by every selection endpoint.
type SelectionResponse struct {
	Start  string           `json:"start"`
	End    string           `json:"end"`
	Alert  string           `json:"alert,omitempty"`
	Notice string           `json:"notice,omitempty"`
	Path   []campus.Segment `json:"path"`
	Scene  render.Scene     `json:"scene"`
}

// NearestResponse is the JSON response for GET /api/v1/selection/nearest.
type NearestResponse struct {
	Building OptionJSON `json:"building"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func optionJSON(b campus.Building) OptionJSON {
	return OptionJSON{ShortName: b.ShortName, LongName: b.LongName, Label: b.Label()}
}
