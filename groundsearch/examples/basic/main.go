// ABOUTME: Basic example showing a grounded search with the groundsearch library
// ABOUTME: Demonstrates minimal configuration, query extraction and source listing

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"groundsearch-api/groundsearch"
)

func main() {
	client, err := groundsearch.NewClient(
		groundsearch.WithProxyAPIKey(os.Getenv("READER_PROXY_API_KEY")),
		groundsearch.WithPageFetchLimit(3),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("=== Sources ===")
	sources, err := client.Sources(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range sources {
		fmt.Printf("%-20s rank=%-2d mode=%-10s enabled=%v\n", s.Name, s.Rank, s.AccessMode, s.Enabled)
	}

	message := "what is the latest stable Go release?"
	decision := client.ExtractQuery(message)
	fmt.Printf("\n=== Query ===\nsearch=%v query=%q url=%v\n", decision.ShouldSearch, decision.Query, decision.IsURL)

	bundle, err := client.Search(ctx, decision.Query)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n=== Results (%s, fallback=%v) ===\n", bundle.Elapsed.Round(time.Millisecond), bundle.UsedFallback)
	for i, r := range bundle.Results {
		fmt.Printf("%2d. [%s] %s\n    %s\n", i+1, r.Source, r.Title, r.URL)
	}

	grounding, err := client.Ground(ctx, message, true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n=== Context ===\n%s\n", grounding.Context)
}
