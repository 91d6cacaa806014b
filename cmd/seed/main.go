// Command seed bulk-imports users, brands and artifacts from CSV files into
// the brandeval database. Imported artifacts start with no cached score, so
// the server's background sweeper evaluates them on its next pass.
//
// Expected files under -data:
//
//	users.csv     id,name,role
//	brands.csv    id,name,description,style,vision,voice,colors
//	prompts.csv   image_path,prompt,model_name,channel,user_id,brand_id,created_at,cached_score
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/brandeval/brandeval/internal/model"
	"github.com/brandeval/brandeval/internal/store"
)

func main() {
	dataDir := flag.String("data", "data", "directory containing the CSV files")
	dbPath := flag.String("db", "brandeval.db", "path to the SQLite database")
	flag.Parse()

	db, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	s, err := store.New(db)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	ctx := context.Background()

	users, err := readCSV(filepath.Join(*dataDir, "users.csv"))
	if err != nil {
		log.Fatalf("read users.csv: %v", err)
	}
	for _, row := range users {
		u := model.User{ID: row["id"], Name: row["name"], Role: row["role"]}
		if err := s.UpsertUser(ctx, u); err != nil {
			log.Fatalf("upsert user %s: %v", u.ID, err)
		}
	}

	brands, err := readCSV(filepath.Join(*dataDir, "brands.csv"))
	if err != nil {
		log.Fatalf("read brands.csv: %v", err)
	}
	for _, row := range brands {
		b := model.Brand{
			ID:          row["id"],
			Name:        row["name"],
			Description: row["description"],
			Style:       row["style"],
			Vision:      row["vision"],
			Voice:       row["voice"],
			Colors:      row["colors"],
		}
		if err := s.UpsertBrand(ctx, b); err != nil {
			log.Fatalf("upsert brand %s: %v", b.ID, err)
		}
	}

	prompts, err := readCSV(filepath.Join(*dataDir, "prompts.csv"))
	if err != nil {
		log.Fatalf("read prompts.csv: %v", err)
	}
	for _, row := range prompts {
		a := model.NewArtifact(
			uuid.New().String(),
			row["prompt"],
			row["image_path"],
			row["model_name"],
			row["channel"],
			row["user_id"],
			row["brand_id"],
		)
		if ts := row["created_at"]; ts != "" {
			a.CreatedAt = ts
			a.UpdatedAt = ts
		}
		if v := row["cached_score"]; v != "" {
			if score, err := strconv.ParseFloat(v, 64); err == nil {
				a.CachedScore = &score
			}
		}
		if err := s.CreateArtifact(ctx, a); err != nil {
			log.Fatalf("create artifact %s: %v", a.ID, err)
		}
	}

	fmt.Printf("imported %d users, %d brands, %d artifacts\n", len(users), len(brands), len(prompts))
}

// readCSV reads a CSV file with a header row into one map per record.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
