package controllers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/animeinsights/blog/middleware"
	"github.com/animeinsights/blog/models"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/utils"
)

const testSecret = "handler-test-secret"

// In-memory stand-ins for the mongo repositories.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[objectID]; ok {
		out := u
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]models.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	f.posts[post.ID] = *post
	return nil
}

// put inserts a fully formed post, preserving its timestamps. Test setup only.
func (f *fakePostRepo) put(post models.Post) models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	f.posts[post.ID] = post
	return post
}

func (f *fakePostRepo) get(id primitive.ObjectID) (models.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	return p, ok
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (*models.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[objectID]; ok {
		out := p
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) FindPublishedByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := f.FindByID(ctx, id)
	if err != nil || post.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) FindPublishedBySlug(_ context.Context, slug string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && p.Status == models.StatusPublished {
			out := p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) ListPublished(_ context.Context, filter repository.PostFilter, page, limit int) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []models.Post{}
	for _, p := range f.posts {
		if p.Status != models.StatusPublished {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !hasTag(p.Tags, filter.Tag) {
			continue
		}
		matches = append(matches, p)
	}
	sortNewestFirst(matches)

	total := int64(len(matches))
	start := (page - 1) * limit
	if start >= len(matches) {
		return []models.Post{}, total, nil
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (f *fakePostRepo) ListVisibleTo(_ context.Context, requester primitive.ObjectID) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []models.Post{}
	for _, p := range f.posts {
		if p.Status == models.StatusPublished || p.AuthorID == requester {
			matches = append(matches, p)
		}
	}
	sortNewestFirst(matches)
	return matches, nil
}

func (f *fakePostRepo) Save(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	f.posts[post.ID] = *post
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) SlugExists(_ context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// newTestRouter mirrors the production route wiring with fake repositories.
func newTestRouter(users repository.UserRepository, posts repository.PostRepository, uploadDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authController := NewAuthController(users, testSecret)
	postController := NewPostController(posts, users, uploadDir)

	api := r.Group("/api")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)

	api.GET("/posts/public", postController.ListPublic)
	api.GET("/posts/public/slug/:slug", postController.GetPublicBySlug)
	api.GET("/posts/public/:id", postController.GetPublic)

	protected := api.Group("/posts")
	protected.Use(middleware.AuthRequired(testSecret))
	protected.GET("", postController.List)
	protected.GET("/:id", postController.Get)
	protected.POST("", postController.Create)
	protected.PUT("/:id", postController.Update)
	protected.DELETE("/:id", postController.Delete)

	return r
}

func bearerFor(user models.User) string {
	tok, err := utils.GenerateToken(user.ID.Hex(), user.Name, testSecret)
	if err != nil {
		panic(err)
	}
	return "Bearer " + tok
}

func addUser(repo *fakeUserRepo, name, email string) models.User {
	user := models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := repo.Create(context.Background(), &user); err != nil {
		panic(err)
	}
	return user
}
