package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ejoh/storefront-backend/config"
	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/kvstore"
)

type seedReview struct {
	ProductID int
	Author    string
	Rating    int
	Comment   string
}

// Built-in demo reviews, used when no XLSX file is given.
var demoReviews = []seedReview{
	{1, "Sarah M.", 5, "Best headphones I have ever owned. The noise cancellation is unreal."},
	{1, "James K.", 4, "Great sound, battery lasts for days. A bit heavy for long sessions."},
	{2, "Priya R.", 5, "Tracks everything I need and the battery easily covers a full week."},
	{4, "Tom W.", 4, "Solid bag with plenty of compartments. Zippers feel a little flimsy."},
	{6, "Elena V.", 5, "Fits perfectly and the denim softens up nicely after a few wears."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize key-value store:", err)
	}
	defer store.Close()

	reviews := demoReviews
	if len(os.Args) >= 2 {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		reviews, err = readReviewsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	}

	fmt.Printf("Total reviews to import: %d\n", len(reviews))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	ctx := context.Background()
	reviewService := service.NewReviewService(store)
	if err := reviewService.Load(ctx); err != nil {
		log.Fatal("Failed to load existing review state:", err)
	}

	imported := 0
	for _, r := range reviews {
		if _, err := reviewService.Add(ctx, r.ProductID, r.Author, r.Rating, r.Comment); err != nil {
			log.Fatal("Failed to import review:", err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total reviews imported: %d\n", imported)
}

// readReviewsFromXLSX expects columns: product_id, author, rating, comment.
// The first row is treated as a header.
func readReviewsFromXLSX(filePath string) ([]seedReview, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var reviews []seedReview
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		productID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			skipped++
			continue
		}
		rating, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil || rating < 1 || rating > 5 {
			skipped++
			continue
		}

		reviews = append(reviews, seedReview{
			ProductID: productID,
			Author:    strings.TrimSpace(row[1]),
			Rating:    rating,
			Comment:   strings.TrimSpace(row[3]),
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d invalid rows\n", skipped)
	}
	return reviews, nil
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return nil, fmt.Errorf("memory backend cannot be seeded, use file, redis or s3")
	case "redis":
		return kvstore.NewRedisStore(&cfg.Redis)
	case "s3":
		return kvstore.NewS3Store(&cfg.S3), nil
	default:
		return kvstore.NewFileStore(cfg.Store.FilePath)
	}
}
