package policy

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/animeinsights/blog/models"
)

func TestCanAccess(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name      string
		requester primitive.ObjectID
		status    string
		action    Action
		want      bool
	}{
		{"owner reads own draft", owner, models.StatusDraft, ActionRead, true},
		{"stranger reads draft", stranger, models.StatusDraft, ActionRead, false},
		{"owner reads published", owner, models.StatusPublished, ActionRead, true},
		{"stranger reads published", stranger, models.StatusPublished, ActionRead, true},
		{"owner updates draft", owner, models.StatusDraft, ActionUpdate, true},
		{"owner updates published", owner, models.StatusPublished, ActionUpdate, true},
		{"stranger updates published", stranger, models.StatusPublished, ActionUpdate, false},
		{"stranger updates draft", stranger, models.StatusDraft, ActionUpdate, false},
		{"owner deletes", owner, models.StatusPublished, ActionDelete, true},
		{"stranger deletes", stranger, models.StatusPublished, ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{AuthorID: owner, Status: tt.status}
			if got := CanAccess(tt.requester, post, tt.action); got != tt.want {
				t.Fatalf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessNilPost(t *testing.T) {
	if CanAccess(primitive.NewObjectID(), nil, ActionRead) {
		t.Fatal("nil post must never be accessible")
	}
}
