package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/store"
)

func main() {
	fs := flag.NewFlagSet("najdeno", flag.ExitOnError)
	dbPath := fs.String("db", "najdeno.sqlite3", "path to SQLite database file")
	addr := fs.String("addr", ":8080", "listen address")
	fs.Parse(os.Args[1:])

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		fmt.Printf("Database %s does not exist, initializing.\n", *dbPath)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Run migrations (idempotent).
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The JWT signing secret lives in the database so tokens survive restarts.
	secret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		log.Fatalf("Failed to load JWT secret: %v", err)
	}

	router := api.NewRouter(database, secret)
	handler := api.LoggingMiddleware(router)

	fmt.Printf("Server listening on %s\n", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
