package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Publish.IsZero() {
		p.Publish = now
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// PublishDate returns the UTC calendar date of the publish timestamp.
func (p *Post) PublishDate() (year int, month time.Month, day int) {
	return p.Publish.UTC().Date()
}

// PublishedOn reports whether the post was published on the given UTC date.
func (p *Post) PublishedOn(year, month, day int) bool {
	y, m, d := p.PublishDate()
	return y == year && int(m) == month && d == day
}

// AbsolutePath is the canonical path of the post detail page.
func (p *Post) AbsolutePath() string {
	y, m, d := p.PublishDate()
	return fmt.Sprintf("/blog/%d/%d/%d/%s/", y, int(m), d, p.Slug)
}

// SharePath is the path of the share form for the post.
func (p *Post) SharePath() string {
	return fmt.Sprintf("/blog/%d/share/", p.ID)
}

// CommentPath is the path comments are posted to.
func (p *Post) CommentPath() string {
	return fmt.Sprintf("/blog/%d/comment/", p.ID)
}
