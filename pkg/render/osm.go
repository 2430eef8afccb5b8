package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/paulmach/osm"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/geo"
)

// RouteOSM builds an OSM document for a path so it can be opened in an OSM
// editor. Every segment becomes a footway; segments sharing an endpoint
// share the node. Ids are negative, marking the elements as new. The route
// start and end nodes are tagged.
func RouteOSM(path []campus.Segment, proj geo.Projection, name string) *osm.OSM {
	doc := &osm.OSM{
		Version:   "0.6",
		Generator: "campus_paths",
	}
	if len(path) == 0 {
		return doc
	}

	nodes := make(map[campus.Point]*osm.Node)
	nodeFor := func(p campus.Point) *osm.Node {
		if n, ok := nodes[p]; ok {
			return n
		}
		ll := proj.ToLatLng(p.X, p.Y)
		n := &osm.Node{
			ID:      osm.NodeID(-(len(doc.Nodes) + 1)),
			Lat:     ll.Lat,
			Lon:     ll.Lng,
			Visible: true,
		}
		nodes[p] = n
		doc.Nodes = append(doc.Nodes, n)
		return n
	}

	for i, seg := range path {
		from := nodeFor(seg.Start)
		to := nodeFor(seg.End)
		w := &osm.Way{
			ID:      osm.WayID(-(i + 1)),
			Visible: true,
			Nodes:   osm.WayNodes{{ID: from.ID}, {ID: to.ID}},
			Tags: osm.Tags{
				{Key: "highway", Value: "footway"},
				{Key: "cost", Value: fmt.Sprintf("%g", seg.Cost)},
			},
		}
		if name != "" {
			w.Tags = append(w.Tags, osm.Tag{Key: "name", Value: name})
		}
		doc.Ways = append(doc.Ways, w)
	}

	start := nodeFor(path[0].Start)
	start.Tags = append(start.Tags, osm.Tag{Key: "route:endpoint", Value: string(MarkerStart)})
	end := nodeFor(path[len(path)-1].End)
	end.Tags = append(end.Tags, osm.Tag{Key: "route:endpoint", Value: string(MarkerEnd)})

	return doc
}

// EncodeOSM writes RouteOSM as indented XML.
func EncodeOSM(w io.Writer, path []campus.Segment, proj geo.Projection, name string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(RouteOSM(path, proj, name)); err != nil {
		return fmt.Errorf("encode osm: %w", err)
	}
	return enc.Flush()
}
