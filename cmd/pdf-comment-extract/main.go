package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/config"
	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/export"
	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf/document"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the configured level
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on configuration
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

// run extracts the comment rows and writes the workbook
func run(cfg *config.Config) error {
	service := pdf.NewService(cfg.MaxFileSize, document.Open)
	service.SetProgress(func(page, total int) {
		if cfg.IsDebug() || page%10 == 0 || page == total {
			log.Printf("Processed page %d/%d", page, total)
		}
	})

	result, err := service.ExtractComments(pdf.PDFExtractCommentsRequest{Path: cfg.InputPath})
	if err != nil {
		return err
	}

	if result.TotalCount == 0 {
		log.Printf("No comments found in %s; check that the PDF contains annotations", cfg.InputPath)
		return nil
	}

	outputPath := cfg.ResolvedOutputPath()
	if err := export.WriteWorkbook(outputPath, cfg.SheetName, result.Rows); err != nil {
		return err
	}

	log.Printf("Wrote %d comments from %d pages to %s", result.TotalCount, result.Pages, outputPath)
	return nil
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PDF Comment Extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
