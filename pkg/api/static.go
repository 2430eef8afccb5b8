package api

import "embed"

// staticFiles is the campus paths page: dropdowns, Go/Clear/Reverse and a
// Leaflet map drawing the scene returned by the selection endpoints.
//
//go:embed static
var staticFiles embed.FS
