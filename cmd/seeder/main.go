//cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/unclebandit/proposal-backend/internal/config"
	"github.com/unclebandit/proposal-backend/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = config.MustLoad().DB.DSN()
	}
	conn, err := db.Open(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// migrations first, then seed data; each directory runs in name order
	var files []string
	for _, pattern := range []string{"migrations/*.sql", "seed/*.sql"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			log.Fatalf("bad pattern %s: %v", pattern, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		_, err = conn.Exec(string(content))
		if err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Applied: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
