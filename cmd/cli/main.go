package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sofialindqvist/garmentry/internal/catalog"
	"github.com/sofialindqvist/garmentry/internal/store"
)

func main() {
	fetchCmd := flag.NewFlagSet("fetch", flag.ExitOnError)
	catalogURL := fetchCmd.String("url", "http://localhost:8080/api/products", "Catalog endpoint to probe")

	purgeCmd := flag.NewFlagSet("purge", flag.ExitOnError)
	days := purgeCmd.Int("days", 30, "Delete snapshots not touched in this many days")

	if len(os.Args) < 2 {
		fmt.Println("expected 'fetch' or 'purge' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fetch":
		fetchCmd.Parse(os.Args[2:])
		probeCatalog(*catalogURL)
	case "purge":
		purgeCmd.Parse(os.Args[2:])
		purgeSnapshots(*days)
	default:
		fmt.Println("expected 'fetch' or 'purge' subcommand")
		os.Exit(1)
	}
}

// probeCatalog fetches the catalog once and reports what the server would
// see at startup.
func probeCatalog(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := catalog.NewClient(url).Fetch(ctx)
	if err != nil {
		log.Fatalf("Catalog probe failed: %v", err)
	}

	fmt.Printf("Fetched %d products from %s\n", len(products), url)
	for _, p := range products {
		if p.Price.IsZero() {
			fmt.Printf("  warning: product %s (%s) has a zero or unparseable price\n", p.ID, p.Name)
		}
	}
}

// purgeSnapshots drops cart/wishlist snapshots of visitors who have not
// been back in a while.
func purgeSnapshots(days int) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./garmentry.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure table exists if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	n, err := db.PurgeBefore(cutoff)
	if err != nil {
		log.Fatalf("Failed to purge snapshots: %v", err)
	}

	fmt.Printf("Purged %d snapshots older than %s.\n", n, cutoff.Format("2006-01-02"))
}
