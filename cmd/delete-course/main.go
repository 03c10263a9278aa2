package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"course-market/internal/config"
	"course-market/internal/marketapi"
	"course-market/internal/session"
)

func main() {
	var (
		courseID = flag.String("id", "", "course id to delete (required)")
		yes      = flag.Bool("yes", false, "skip the confirmation prompt")
	)
	flag.Parse()

	if *courseID == "" {
		log.Fatal("missing flag: -id is required")
	}

	if !*yes && !confirm(*courseID) {
		fmt.Println("Aborted")
		return
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client := marketapi.New(cfg.BaseURL, session.StaticToken(""))
	if err := client.DeleteCourse(ctx, *courseID); err != nil {
		log.Fatalf("delete failed: %v", err)
	}
	fmt.Printf("OK: course %s deleted\n", *courseID)
}

func confirm(courseID string) bool {
	fmt.Printf("Delete course %s? [y/N]: ", courseID)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
