// Package main runs the Avalform survey crawler: it loads the person
// records file, launches a browser, and walks the eight form pages once
// per record.
package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	avalform "github.com/alihajqani/avalform-crawler"
)

// Default runtime configuration. A .env file in the working directory
// may override any of these via the AVALFORM_* keys below.
const (
	siteURL  = "https://form.avalform.com/view.php?id=70833985" // URL of page 1
	headless = false
	dataFile = "persons.json"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run() error {
	// Optional; absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := avalform.Config{
		URL:        envOr("AVALFORM_URL", siteURL),
		DataFile:   envOr("AVALFORM_DATA_FILE", dataFile),
		Headless:   envBool("AVALFORM_HEADLESS", headless),
		CaptureDir: os.Getenv("AVALFORM_CAPTURE_DIR"),
	}

	crawler, err := avalform.New(cfg)
	if err != nil {
		return err
	}
	defer crawler.Close()

	if err := crawler.Start(); err != nil {
		return err
	}
	return crawler.Run(context.Background())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
