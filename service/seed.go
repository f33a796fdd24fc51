package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"blogsite/app/config"
	"blogsite/app/models"
	"blogsite/app/repositories"
	"blogsite/app/services"
)

// seedPost is one entry of a seed file. Status accepts "draft" and
// "published" as well as the stored codes.
type seedPost struct {
	Title   string    `json:"title"`
	Slug    string    `json:"slug"`
	Author  string    `json:"author"`
	Body    string    `json:"body"`
	Publish time.Time `json:"publish"`
	Status  string    `json:"status"`
}

func (p seedPost) status() (models.Status, error) {
	switch strings.ToLower(p.Status) {
	case "", "draft", "df":
		return models.StatusDraft, nil
	case "published", "pb":
		return models.StatusPublished, nil
	default:
		return "", fmt.Errorf("unknown status %q", p.Status)
	}
}

// seed loads posts from a JSON array into the database.
func seed(cfg config.StorageConfig, file string) int {
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("Failed to read seed file: %v\n", err)
		return 1
	}

	var entries []seedPost
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Printf("Failed to parse seed file: %v\n", err)
		return 1
	}

	store, err := repositories.Open(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	postService := services.NewPostService(store.Posts(), store.Comments())
	for i, entry := range entries {
		status, err := entry.status()
		if err != nil {
			fmt.Printf("Post %d: %v\n", i+1, err)
			return 1
		}
		post := &models.Post{
			Title:   entry.Title,
			Slug:    entry.Slug,
			Author:  entry.Author,
			Body:    entry.Body,
			Publish: entry.Publish,
			Status:  status,
		}
		if err := postService.CreatePost(post); err != nil {
			fmt.Printf("Post %d (%s): %v\n", i+1, entry.Slug, err)
			return 1
		}
	}

	fmt.Printf("Seeded %d posts\n", len(entries))
	return 0
}
