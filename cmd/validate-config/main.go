package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mlefevre/diabecare/internal/config"
)

func main() {
	fmt.Println("🔍 Vérification de la configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Fichier .env introuvable: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration invalide:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration valide !")
	fmt.Printf("📋 Détails:\n")
	fmt.Printf("  - Storage Driver: %s\n", cfg.Storage.Driver)
	fmt.Printf("  - SQLite Path: %s\n", cfg.Storage.SQLitePath)
	fmt.Printf("  - Redis: %s:%s\n", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port)
	fmt.Printf("  - DB Host: %s\n", cfg.Storage.DB.Host)
	fmt.Printf("  - DB Name: %s\n", cfg.Storage.DB.DBName)
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.Telegram.Token))
	fmt.Printf("  - Telegram Chat ID: %d\n", cfg.Telegram.ChatID)
	fmt.Printf("  - Export Dir: %s\n", cfg.Export.Dir)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<non défini>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
