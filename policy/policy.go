// Package policy centralizes the per-post authorization decision so that
// every handler applies the same ownership and visibility rules.
package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/animeinsights/blog/models"
)

// Action names an operation a requester wants to perform on a post.
type Action int

const (
	ActionRead Action = iota
	ActionUpdate
	ActionDelete
)

// CanAccess reports whether the requester may perform action on the post.
// Published posts are readable by anyone; drafts only by their author.
// Update and delete always require ownership.
func CanAccess(requester primitive.ObjectID, post *models.Post, action Action) bool {
	if post == nil {
		return false
	}
	switch action {
	case ActionRead:
		return post.Status == models.StatusPublished || post.AuthorID == requester
	case ActionUpdate, ActionDelete:
		return post.AuthorID == requester
	default:
		return false
	}
}
