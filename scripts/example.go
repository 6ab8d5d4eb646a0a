package main

import (
	"fmt"
	"log"

	"github.com/1F47E/go-bombsight/pkg/geo"
	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/1F47E/go-bombsight/pkg/planner"
)

func main() {
	constants := physics.DefaultConstants()

	sim, err := physics.NewSimulator(constants)
	if err != nil {
		log.Fatalf("Failed to create simulator: %v", err)
	}
	p, err := planner.New(constants, sim)
	if err != nil {
		log.Fatalf("Failed to create planner: %v", err)
	}

	// Sample drop zones around Puget Sound
	catalog := geo.NewCatalog(constants.EarthRadiusMiles)
	err = catalog.Add(
		models.Target{ID: "ARLINGTON", Location: models.GeoPoint{Lat: 48.160464, Lon: -122.166409}},
		models.Target{ID: "PAINE", Location: models.GeoPoint{Lat: 47.9063, Lon: -122.2816}},
		models.Target{ID: "BOEING", Location: models.GeoPoint{Lat: 47.5300, Lon: -122.3019}},
		models.Target{ID: "SKAGIT", Location: models.GeoPoint{Lat: 48.4709, Lon: -122.4208}},
	)
	if err != nil {
		log.Fatalf("Failed to add targets: %v", err)
	}

	position := models.GeoPoint{Lat: 48.0, Lon: -122.2}
	fmt.Printf("Aircraft at (%.4f, %.4f), 1500 ft, 120 mph\n\n", position.Lat, position.Lon)

	nearest, err := catalog.Nearest(position, 3)
	if err != nil {
		log.Fatalf("Nearest query failed: %v", err)
	}
	for _, target := range nearest {
		sol, err := p.Plan(planner.Request{
			AltitudeFeet:   1500,
			GroundSpeedMPH: 120,
			Current:        position,
			Target:         target.Location,
		})
		if err != nil {
			log.Printf("%s: %v", target.ID, err)
			continue
		}
		fmt.Printf("%-10s bearing %6.2f  %6.2f mi  drop in %7.1fs  ideal altitude %8.0f ft\n",
			target.ID, sol.BearingDeg, sol.DistanceMiles, sol.TimeUntilDrop, sol.IdealAltitudeFeet)
	}
}
