package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post visibility states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// DefaultCategory is applied when a post is created without one.
const DefaultCategory = "Anime"

// DefaultReadTime is the read-time estimate in minutes for new posts.
const DefaultReadTime = 5

// Post represents a blog article owned by a single author.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Excerpt   string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Category  string             `bson:"category" json:"category"`
	Tags      []string           `bson:"tags" json:"tags"`
	Slug      string             `bson:"slug,omitempty" json:"slug,omitempty"`
	AuthorID  primitive.ObjectID `bson:"author" json:"-"`
	Status    string             `bson:"status" json:"status"`
	Featured  bool               `bson:"featured" json:"featured"`
	ReadTime  int                `bson:"read_time" json:"readTime"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ValidStatus reports whether s is a known visibility state.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
