package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"course-market/internal/config"
	"course-market/internal/marketapi"
	"course-market/internal/session"
)

func main() {
	var (
		outDir  = flag.String("out", ".", "directory to write the images into")
		workers = flag.Int("workers", 0, "max parallel downloads (default from config)")
	)
	flag.Parse()

	filenames := flag.Args()
	if len(filenames) == 0 {
		log.Fatal("usage: fetch-images [-out dir] [-workers n] <filename>...")
	}

	start := time.Now()
	err := run(*outDir, *workers, filenames)
	log.Printf("Execution finished in %s", time.Since(start))
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
}

func run(outDir string, workers int, filenames []string) error {
	cfg := config.Load()
	if workers <= 0 {
		workers = cfg.MaxWorkers
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client := marketapi.New(cfg.BaseURL, session.StaticToken(""))

	log.Printf("Fetching %d images with %d workers...", len(filenames), workers)
	images, errs := client.FetchCourseImages(ctx, filenames, workers)

	failures := 0
	for i, name := range filenames {
		if errs[i] != nil {
			log.Printf("[%d/%d] ERR %s: %v", i+1, len(filenames), name, errs[i])
			failures++
			continue
		}
		dest := filepath.Join(outDir, filepath.Base(name))
		if err := os.WriteFile(dest, images[i], 0o644); err != nil {
			log.Printf("[%d/%d] ERR write %s: %v", i+1, len(filenames), dest, err)
			failures++
			continue
		}
		log.Printf("[%d/%d] OK %s (%d bytes)", i+1, len(filenames), dest, len(images[i]))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d images failed", failures, len(filenames))
	}
	fmt.Printf("OK: fetched %d images\n", len(filenames))
	return nil
}
