package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"wanderlust/internal/ai"
	"wanderlust/internal/config"
	"wanderlust/internal/logger"
	"wanderlust/internal/modules/itinerary"
)

func main() {
	country := flag.String("country", "Japan", "country to travel through")
	mode := flag.String("mode", "car", "travel mode: car or bike")
	asJSON := flag.Bool("json", false, "also print the raw itinerary JSON")
	flag.Parse()

	if !itinerary.TravelMode(*mode).Valid() {
		log.Fatalf("unknown mode %q", *mode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	llm, closeLLM, err := ai.NewFromConfig(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer func() { _ = closeLLM() }()

	gen := ai.NewRouteGenerator(llm, itinerary.NewRouteSchema(), itinerary.Fallback, lg)
	fmt.Printf("Generating a %s route through %s with %s...\n", *mode, *country, cfg.AI.Provider)

	res := gen.Generate(ctx, *country, itinerary.TravelMode(*mode))
	if !res.Generated {
		fmt.Printf("Generation failed, showing fallback: %v\n", res.Err)
	}

	for i, day := range res.Itinerary.Days() {
		fmt.Printf("\nDay %d: %.0f km, %d waypoints\n", i+1, day.DailyDistance, len(day.Waypoints))
		for _, wp := range day.Waypoints {
			fmt.Printf("  - %s (%.4f, %.4f)\n", wp.Name, wp.Position.Lat(), wp.Position.Lng())
		}
		fmt.Printf("  %s\n", day.DayRecap)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(res.Itinerary, "", "  ")
		fmt.Println(string(out))
	}
}
