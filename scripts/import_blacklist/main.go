package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lumora-app/matchmaker/internal/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Imports blacklist pairs from a spreadsheet. Expected columns:
// user_a | user_b | reason (header row is skipped).
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_blacklist <file.xlsx>")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	repo := repositories.NewBlacklistRepository(db)

	totalImported := 0
	totalSkipped := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 2 { // Skip header or invalid rows
				continue
			}

			userA, errA := strconv.ParseUint(row[0], 10, 32)
			userB, errB := strconv.ParseUint(row[1], 10, 32)
			if errA != nil || errB != nil {
				fmt.Printf("Invalid user IDs in row %d: %v\n", i+1, row[:2])
				totalSkipped++
				continue
			}

			reason := ""
			if len(row) > 2 {
				reason = row[2]
			}

			if err := repo.Add(uint(userA), uint(userB), reason); err != nil {
				fmt.Printf("Skipping row %d: %v\n", i+1, err)
				totalSkipped++
				continue
			}
			totalImported++
		}
	}

	fmt.Printf("Done. Imported %d pairs, skipped %d.\n", totalImported, totalSkipped)
}
