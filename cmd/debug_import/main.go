// Command debug_import prints the plan of a transaction import as JSON
// without touching the database.
//
//	go run ./cmd/debug_import <account> <object>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"budget-core/core/config"
	"budget-core/core/database"
	"budget-core/core/livequery"
	"budget-core/core/numfmt"
	"budget-core/core/storage"
	"budget-core/feature/transactions"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: debug_import <account> <object>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	svc := transactions.NewService(db, client, cfg.Storage.Bucket, numfmt.NewFormatter(cfg.Format), livequery.NewRegistry(nil), nil, nil)
	res, err := svc.Plan(context.Background(), transactions.ImportRequest{
		Account: os.Args[1],
		Object:  os.Args[2],
		Purge:   true,
	})
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatal(err)
	}
}
