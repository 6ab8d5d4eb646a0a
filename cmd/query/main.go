package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1F47E/go-bombsight/pkg/config"
	"github.com/1F47E/go-bombsight/pkg/geo"
	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/units"
)

type leg struct {
	From           models.GeoPoint `json:"from"`
	To             models.GeoPoint `json:"to"`
	ToID           string          `json:"to_id,omitempty"`
	BearingDeg     float64         `json:"bearing_deg"`
	DistanceMiles  float64         `json:"distance_miles"`
	DistanceMeters float64         `json:"distance_meters"`
}

func main() {
	var (
		configFile = flag.String("c", "", "Scenario YAML file for constants and targets")
		queryType  = flag.String("t", "leg", "Query type: leg, radius, nearest, list")
		// Leg query parameters
		fromLat = flag.Float64("lat", 0, "From latitude")
		fromLon = flag.Float64("lon", 0, "From longitude")
		toLat   = flag.Float64("to-lat", 0, "To latitude (leg query)")
		toLon   = flag.Float64("to-lon", 0, "To longitude (leg query)")
		// Catalog query parameters
		radius = flag.Float64("radius", 1, "Radius in statute miles (radius query)")
		k      = flag.Int("k", 5, "Number of nearest targets (nearest query)")
		// Output format
		outputJSON = flag.Bool("json", false, "Output results as JSON")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	earthRadius := cfg.Constants.EarthRadiusMiles
	from := models.GeoPoint{Lat: *fromLat, Lon: *fromLon}

	newLeg := func(to models.GeoPoint, id string) leg {
		miles := geo.Distance(from, to, earthRadius)
		return leg{
			From:           from,
			To:             to,
			ToID:           id,
			BearingDeg:     geo.Bearing(from, to),
			DistanceMiles:  miles,
			DistanceMeters: units.MetersFromMiles(miles),
		}
	}

	var results []leg
	switch *queryType {
	case "leg":
		results = append(results, newLeg(models.GeoPoint{Lat: *toLat, Lon: *toLon}, ""))

	case "radius", "nearest", "list":
		catalog := geo.NewCatalog(earthRadius)
		if err := catalog.Add(cfg.Targets...); err != nil {
			log.Fatalf("Failed to index targets: %v", err)
		}
		log.Printf("Catalog loaded with %d targets\n", catalog.Len())

		var (
			targets []models.Target
			err     error
		)
		switch *queryType {
		case "radius":
			if targets, err = catalog.WithinRadius(from, *radius); err != nil {
				log.Fatalf("Radius query failed: %v", err)
			}
			log.Printf("Radius query (%.2f mi) found %d targets\n", *radius, len(targets))
		case "nearest":
			if targets, err = catalog.Nearest(from, *k); err != nil {
				log.Fatalf("Nearest query failed: %v", err)
			}
			log.Printf("Found %d nearest targets\n", len(targets))
		default:
			targets = catalog.Targets()
		}
		for _, t := range targets {
			results = append(results, newLeg(t.Location, t.ID))
		}

	default:
		log.Fatalf("Unknown query type: %s", *queryType)
	}

	if *outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			log.Fatalf("Failed to encode results: %v", err)
		}
		return
	}
	for i, r := range results {
		name := r.ToID
		if name == "" {
			name = fmt.Sprintf("(%.6f, %.6f)", r.To.Lat, r.To.Lon)
		}
		fmt.Printf("%d. %s: bearing %.2f deg, %.4f mi (%.1f m)\n",
			i+1, name, r.BearingDeg, r.DistanceMiles, r.DistanceMeters)
	}
}
