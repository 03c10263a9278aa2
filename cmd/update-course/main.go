package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"course-market/internal/config"
	"course-market/internal/domain"
	"course-market/internal/editor"
	"course-market/internal/marketapi"
	"course-market/internal/session"
)

func main() {
	var (
		courseFile  = flag.String("course", "", "path to the course JSON file (required)")
		token       = flag.String("token", "", "bearer token (falls back to MARKET_TOKEN)")
		userID      = flag.String("user", "", "instructor user id (required)")
		title       = flag.String("title", "", "new title")
		description = flag.String("description", "", "new description")
		category    = flag.String("category", "", "new category")
		duration    = flag.String("duration", "", "new duration in hours")
		startDate   = flag.String("start", "", "new start date (YYYY-MM-DD)")
		endDate     = flag.String("end", "", "new end date (YYYY-MM-DD)")
		price       = flag.String("price", "", "new price as typed into the form (digits = minor units)")
		videoURL    = flag.String("video", "", "new video URL")
		imagePath   = flag.String("image", "", "path to a new background image")
	)
	flag.Parse()

	if err := run(*courseFile, *token, *userID, fieldArgs{
		title:       *title,
		description: *description,
		category:    *category,
		duration:    *duration,
		startDate:   *startDate,
		endDate:     *endDate,
		price:       *price,
		videoURL:    *videoURL,
		imagePath:   *imagePath,
	}); err != nil {
		log.Fatalf("update failed: %v", err)
	}
}

type fieldArgs struct {
	title, description, category, duration string
	startDate, endDate, price, videoURL    string
	imagePath                              string
}

func run(courseFile, token, userID string, args fieldArgs) error {
	cfg := config.Load()

	if courseFile == "" || userID == "" {
		return fmt.Errorf("missing flags: -course and -user are required")
	}
	if token == "" {
		token = os.Getenv("MARKET_TOKEN")
	}

	course, err := readCourse(courseFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client := marketapi.New(cfg.BaseURL, session.StaticToken(token))
	ed := editor.New(client, domain.User{Sub: userID}, course)
	ed.Prices = editor.NewPriceFormatter(cfg.DisplayLocale)
	ed.Open()

	fields := map[string]string{
		"title":       args.title,
		"description": args.description,
		"category":    args.category,
		"duration":    args.duration,
		"startDate":   args.startDate,
		"endDate":     args.endDate,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if msg := ed.UpdateField(name, value); msg != "" {
			log.Printf("WARN %s: %s", name, msg)
		}
	}
	if args.price != "" {
		ed.UpdatePrice(args.price)
		ed.UpdateField("price", args.price)
		log.Printf("Price set to %s", ed.FormatPrice())
	}
	if args.videoURL != "" {
		ed.SetVideoURL(args.videoURL)
		if embed, ok := editor.EmbedURL(args.videoURL); ok {
			log.Printf("Video preview: %s", embed)
		} else {
			log.Printf("Video URL stored (no preview for this host)")
		}
	}
	if args.imagePath != "" {
		f, err := os.Open(args.imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		st, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat image: %w", err)
		}
		ref := &editor.FileRef{Name: filepath.Base(args.imagePath), Size: st.Size(), Content: f}
		if msg := ed.SetImageFile(ref); msg != "" {
			return fmt.Errorf("image rejected: %s", msg)
		}
	}

	outcome, err := ed.Save(ctx)
	if err != nil {
		var blocked *editor.ValidationBlockedError
		if errors.As(err, &blocked) {
			for field, msg := range blocked.Fields {
				log.Printf("ERR %s: %s", field, msg)
			}
		}
		return err
	}
	if outcome == editor.OutcomeNoChanges {
		fmt.Println("OK: nothing to save")
		return nil
	}

	// Keep the cross-tab snapshot current, the way the card does on save.
	store := session.NewStore()
	if err := store.SaveCourseSnapshot(domain.NewCourseSnapshot(course)); err != nil {
		log.Printf("WARN snapshot: %v", err)
	}

	fmt.Printf("OK: course %s updated\n", course.ID)
	return nil
}

func readCourse(path string) (domain.Course, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Course{}, fmt.Errorf("read course file: %w", err)
	}
	var c domain.Course
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.Course{}, fmt.Errorf("parse course file: %w", err)
	}
	return c, nil
}
