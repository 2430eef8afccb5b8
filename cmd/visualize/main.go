package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"campus_paths/pkg/geo"
	"campus_paths/pkg/pathservice"
	"campus_paths/pkg/render"
	"campus_paths/pkg/selection"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	serviceURL := flag.String("service-url", envOr("CAMPUS_SERVICE_URL", "http://localhost:4567"), "Campus route service base URL")
	start := flag.String("start", "", "Start building short name")
	end := flag.String("end", "", "End building short name")
	reverse := flag.Bool("reverse", false, "Reverse the route after lookup")
	list := flag.Bool("list", false, "List buildings and exit")
	pngPath := flag.String("png", "", "Write a PNG preview to this path")
	geojsonPath := flag.String("geojson", "", "Write the route as GeoJSON to this path")
	osmPath := flag.String("osm", "", "Write the route as OSM XML to this path")
	timeout := flag.Duration("timeout", 15*time.Second, "Overall timeout")
	flag.Parse()

	client, err := pathservice.NewClient(pathservice.DefaultConfig(*serviceURL))
	if err != nil {
		log.Fatalf("Invalid route service config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	view := render.NewContainer(geo.UW)
	ctrl := selection.New(client, view.Update, func(msg string, err error) {
		log.Printf("%s (%v)", msg, err)
	})
	defer ctrl.Close()

	if err := ctrl.LoadBuildings(ctx); err != nil {
		log.Fatalf("Failed to load buildings: %v", err)
	}
	if *list {
		for _, b := range ctrl.Catalog().Buildings() {
			fmt.Println(b.Label())
		}
		return
	}

	ctrl.SelectStart(*start)
	ctrl.SelectEnd(*end)
	if err := ctrl.Go(ctx); err != nil {
		exitOn(ctrl, err)
	}
	if *reverse {
		if err := ctrl.Reverse(); err != nil {
			exitOn(ctrl, err)
		}
	}

	st := ctrl.State()
	scene := view.Scene()
	log.Printf("%s -> %s: %d segments, cost %.2f, %.0f m",
		st.StartValue, st.EndValue, len(scene.Lines), scene.Cost, scene.LengthMeters)

	name := fmt.Sprintf("%s to %s", st.StartValue, st.EndValue)
	writeOutput(*geojsonPath, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(scene.FeatureCollection())
	})
	writeOutput(*osmPath, func(w io.Writer) error {
		return render.EncodeOSM(w, view.Path(), geo.UW, name)
	})
	writeOutput(*pngPath, func(w io.Writer) error {
		opts := render.DefaultPNGOptions()
		opts.StartLabel, opts.EndLabel = st.StartValue, st.EndValue
		return render.EncodePNG(w, scene, opts)
	})
}

func exitOn(ctrl *selection.Controller, err error) {
	if selection.IsValidation(err) {
		log.Fatalf("%s", ctrl.State().AlertMessage)
	}
	log.Fatalf("Route lookup failed: %v", err)
}

func writeOutput(path string, write func(io.Writer) error) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", path, err)
	}
	log.Printf("Wrote %s", path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
