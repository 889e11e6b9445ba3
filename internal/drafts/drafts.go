package drafts

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("draft not found")

// Draft is a blog post composed in the console that has not reached the
// backend yet. In development, a publish that fails against the backend is
// retained here so the CMS list still reflects it.
type Draft struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Lang            string    `json:"lang" bson:"lang"`
	Slug            string    `json:"slug" bson:"slug"`
	Title           string    `json:"title" bson:"title"`
	ContentMarkdown string    `json:"content_markdown" bson:"contentMarkdown"`
	Author          string    `json:"author" bson:"author"`
	Published       bool      `json:"published" bson:"published"`
	CreatedAt       time.Time `json:"created_at" bson:"createdAt"`
}

// Repository stores drafts. The memory implementation backs development and
// tests; the Mongo implementation survives console restarts.
type Repository interface {
	Save(d *Draft) (string, error)
	List() ([]*Draft, error)
	Delete(id string) error
}
