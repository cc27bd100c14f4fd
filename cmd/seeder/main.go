package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	const batchSize = 100 // Insert 100 players at a time
	const numPlayers = 5000

	log.Info("Preparing to insert dummy players...", "total", numPlayers, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*8) // 8 columns per player

	for i := 0; i < numPlayers; i++ {
		numTournaments := rand.Intn(50) + 1
		wins := rand.Intn(numTournaments * 10)
		losses := rand.Intn(numTournaments * 10)
		draws := rand.Intn(numTournaments*3 + 1)
		games := wins + losses + draws
		score := wins*2 + draws
		tournamentWins := rand.Intn(numTournaments + 1)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			fmt.Sprintf("seed_player_%05d", i),
			score,
			games,
			numTournaments,
			tournamentWins,
			wins,
			losses,
			draws,
		)

		if (i+1)%batchSize == 0 || (i+1) == numPlayers {
			stmt := fmt.Sprintf(`
				INSERT OR IGNORE INTO tourney_stats (username, score, games, num_tournaments, tournament_wins, wins, losses, draws)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*8)
			log.Info("Inserted batch", "completed", i+1, "total", numPlayers)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy players.", "duration", duration)
}
