package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cotton-backend/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL RECORDS!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all contracts")
	fmt.Println("  - Delete all deliveries")
	fmt.Println("  - Delete all payments")
	fmt.Println("  - Delete all ledger entries")
	fmt.Println("  - Delete all ginners and mills")
	fmt.Println("  - Keep user accounts")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	confirm, _ := reader.ReadString('\n')
	if confirm != "yes\n" && confirm != "yes\r\n" {
		fmt.Println("Aborted.")
		return
	}

	godotenv.Load()
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = filepath.Join("data", "cotton.db")
	}

	database, err := db.Open(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	tables := []string{
		"ledger_entries",
		"payments",
		"deliveries",
		"contracts",
		"ginners",
		"mills",
	}

	for _, table := range tables {
		res, err := database.Exec("DELETE FROM " + table)
		if err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
		n, _ := res.RowsAffected()
		fmt.Printf("  cleared %-15s (%d rows)\n", table, n)
	}

	if _, err := database.Exec("VACUUM"); err != nil {
		log.Printf("VACUUM failed: %v", err)
	}

	fmt.Println()
	fmt.Println("Done. The database is empty except for user accounts.")
}
