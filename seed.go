package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/animeinsights/blog/models"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/utils"
)

const adminEmail = "admin@animeinsights.com"

// runSeed creates the admin user (unless it already exists) and a few sample
// posts. The admin password must come from the environment; seeding refuses
// to embed a credential in source.
func runSeed(users repository.UserRepository, posts repository.PostRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := users.FindByEmail(ctx, adminEmail)
	if errors.Is(err, repository.ErrNotFound) {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			return errors.New("ADMIN_PASSWORD must be set to seed the admin user")
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin = &models.User{
			Name:         "Anime Insights Admin",
			Email:        adminEmail,
			PasswordHash: hash,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		utils.Sugar.Infof("admin user created: %s", adminEmail)
	} else if err != nil {
		return fmt.Errorf("look up admin user: %w", err)
	}

	samples := []models.Post{
		{
			Title:   "How Anime Openings Reflect Character Growth",
			Excerpt: "Discover how iconic anime openings mirror the themes and growth of the characters you love.",
			Content: "Anime openings are more than just catchy tunes accompanied by flashy visuals. A well-crafted opening gives the audience subtle insights into the protagonist's mindset, foreshadows story developments, and reflects the emotional tone of the series. From Naruto's energetic themes to Attack on Titan's intense visuals, openings set the stage for the emotional rollercoaster ahead.",
			Status:  models.StatusPublished,
		},
		{
			Title:   "Productivity Lessons From Naruto's Training Arcs",
			Excerpt: "Learn how Naruto's determination and training routines can inspire your own productivity.",
			Content: "Naruto's journey from an underdog to a legendary ninja offers a masterclass in perseverance, discipline, and productivity. His training arcs provide actionable lessons for daily life, whether it's the classic never-give-up attitude or the importance of consistent practice.",
			Status:  models.StatusPublished,
		},
		{
			Title:   "90s Anime Nostalgia: Why Old Classics Still Hit Different",
			Excerpt: "Take a throwback journey into 90s anime and see why fans still cherish the classics.",
			Content: "The 1990s were a golden era for anime, producing series that left an indelible mark on fans worldwide. These shows continue to resonate because of their storytelling, memorable characters, and the distinct animation style that defined the decade.",
			Status:  models.StatusDraft,
		},
	}

	for i := range samples {
		post := &samples[i]
		post.AuthorID = admin.ID
		post.Category = models.DefaultCategory
		post.Tags = []string{}
		post.ReadTime = models.DefaultReadTime
		post.Slug = utils.Slugify(post.Title)
		if exists, err := posts.SlugExists(ctx, post.Slug, post.ID); err != nil {
			return fmt.Errorf("check slug: %w", err)
		} else if exists {
			utils.Sugar.Infof("sample post already seeded: %s", post.Slug)
			continue
		}
		if err := posts.Create(ctx, post); err != nil {
			return fmt.Errorf("create sample post: %w", err)
		}
	}

	return nil
}
