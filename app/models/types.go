package models

import "time"

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

// Post represents a blog post.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	Title     string    `json:"title" validate:"required,min=1,max=250"`
	Slug      string    `json:"slug" validate:"required,max=250,slug"`
	Author    string    `json:"author" validate:"max=150"`
	Body      string    `json:"body" validate:"required"`
	Publish   time.Time `json:"publish" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at"`
	Status    Status    `json:"status" validate:"required,oneof=DF PB"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	Name      string    `json:"name" validate:"required,max=80"`
	Email     string    `json:"email" validate:"required,email"`
	Body      string    `json:"body" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active"`
	Post      *Post     `json:"-" validate:"-"`
}
