// Command migrate copies trip documents from a file store into Firestore,
// preserving original timestamps.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/chaigney/golftrip/internal/config"
	"github.com/chaigney/golftrip/internal/store"
)

func main() {
	cfg := config.Load()
	if cfg.GCPProjectID == "" {
		log.Fatal("GCP_PROJECT_ID is required")
	}

	ctx := context.Background()

	src, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open file store: %v", err)
	}

	dst, err := store.NewFirestoreStore(ctx, cfg.GCPProjectID, cfg.FirestoreDB)
	if err != nil {
		log.Fatalf("Failed to open firestore: %v", err)
	}
	defer dst.Close()

	dbName := cfg.FirestoreDB
	if dbName == "" {
		dbName = "(default)"
	}
	fmt.Printf("Migrating from %s -> Firestore (project: %s, database: %s)\n\n", cfg.DataDir, cfg.GCPProjectID, dbName)

	trips, err := src.ListTrips(ctx)
	if err != nil {
		log.Fatalf("Failed to list trips: %v", err)
	}
	fmt.Printf("Trips: %d\n", len(trips))

	migrated := 0
	for _, t := range trips {
		fmt.Printf("  %s (%s)\n", t.Name, t.ID)
		fmt.Printf("    Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("    Players: %d, Teams: %d, Matches: %d, Archives: %d\n",
			len(t.Players), len(t.Teams), len(t.Matches), len(t.History))
		if err := dst.ImportTrip(ctx, t); err != nil {
			fmt.Printf("    SKIP: %v\n", err)
			continue
		}
		migrated++
		fmt.Printf("    OK\n")
	}

	fmt.Printf("\nDone. Migrated %d of %d trip(s).\n", migrated, len(trips))
}
