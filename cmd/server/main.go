package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bmssp_router/pkg/api"
	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/routing"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph binary")
	port := flag.Int("port", 8080, "HTTP port")
	algo := flag.String("algorithm", "bmssp", "Shortest-path algorithm: bmssp or dijkstra")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	algorithm := routing.Algorithm(*algo)
	switch algorithm {
	case routing.AlgorithmBMSSP, routing.AlgorithmDijkstra:
	default:
		log.Fatalf("Unknown algorithm %q (want bmssp or dijkstra)", *algo)
	}

	start := time.Now()

	// Load graph.
	log.Printf("Loading graph from %s...", *graphPath)
	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	if !g.HasCoords() {
		log.Fatalf("Graph file carries no node coordinates; rebuild it with preprocess")
	}

	// Build routing engine.
	log.Println("Building R-tree spatial index...")
	engine := routing.NewEngine(g, algorithm)

	loadTime := time.Since(start)
	log.Printf("Ready in %s (algorithm: %s)", loadTime.Round(time.Millisecond), algorithm)

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes:  g.NumNodes,
		NumEdges:  g.NumEdges,
		Algorithm: string(algorithm),
	}

	handlers := api.NewHandlers(engine, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
