package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/animeinsights/blog/middleware"
	"github.com/animeinsights/blog/models"
	"github.com/animeinsights/blog/policy"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/utils"
)

const publicListCachePrefix = "cache:posts:public:"

// PostController manages CRUD operations and public listings for posts.
type PostController struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	uploadDir string
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repository.PostRepository, users repository.UserRepository, uploadDir string) *PostController {
	return &PostController{posts: posts, users: users, uploadDir: uploadDir}
}

// ListPublic returns published posts filtered by category and/or tag,
// paginated and sorted newest first. No authentication required.
func (p *PostController) ListPublic(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	tag := strings.TrimSpace(ctx.Query("tag"))
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))

	cacheKey := fmt.Sprintf("%scat=%s:tag=%s:page=%d:limit=%d", publicListCachePrefix, category, tag, page, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	filter := repository.PostFilter{Category: category, Tag: tag}
	posts, total, err := p.posts.ListPublished(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	items, err := p.withAuthors(ctx.Request.Context(), posts)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	body := gin.H{
		"posts":       items,
		"totalPages":  (total + int64(limit) - 1) / int64(limit),
		"currentPage": page,
		"totalPosts":  total,
	}
	utils.CacheSetJSON(cacheKey, body, 0)
	ctx.JSON(http.StatusOK, body)
}

// GetPublic returns a single published post by id; drafts answer 404 so their
// existence is never leaked to unauthenticated callers.
func (p *PostController) GetPublic(ctx *gin.Context) {
	post, err := p.posts.FindPublishedByID(ctx.Request.Context(), ctx.Param("id"))
	p.respondSingle(ctx, post, err)
}

// GetPublicBySlug returns a single published post by slug.
func (p *PostController) GetPublicBySlug(ctx *gin.Context) {
	post, err := p.posts.FindPublishedBySlug(ctx.Request.Context(), ctx.Param("slug"))
	p.respondSingle(ctx, post, err)
}

func (p *PostController) respondSingle(ctx *gin.Context, post *models.Post, err error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}
	item, err := p.withAuthor(ctx.Request.Context(), *post)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// List returns published posts plus the requester's own drafts, newest first.
func (p *PostController) List(ctx *gin.Context) {
	requester, ok := getRequesterID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	posts, err := p.posts.ListVisibleTo(ctx.Request.Context(), requester)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	items, err := p.withAuthors(ctx.Request.Context(), posts)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get returns a single post; drafts are only visible to their author.
func (p *PostController) Get(ctx *gin.Context) {
	requester, ok := getRequesterID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	post, err := p.posts.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !policy.CanAccess(requester, post, policy.ActionRead) {
		utils.Error(ctx, http.StatusForbidden, "Access denied")
		return
	}

	item, err := p.withAuthor(ctx.Request.Context(), *post)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create stores a new post for the authenticated requester. The author is
// always the requester, regardless of request content.
func (p *PostController) Create(ctx *gin.Context) {
	requester, ok := getRequesterID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	title := utils.SanitizeStrict(strings.TrimSpace(ctx.PostForm("title")))
	content := utils.Sanitize(ctx.PostForm("content"))
	if title == "" || content == "" {
		utils.ValidationFailed(ctx, requiredFieldErrors(title, content))
		return
	}

	status := ctx.PostForm("status")
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		utils.ValidationFailed(ctx, []gin.H{{"field": "status", "message": "status must be draft or published"}})
		return
	}

	category := strings.TrimSpace(ctx.PostForm("category"))
	if category == "" {
		category = models.DefaultCategory
	}

	slug, err := p.uniqueSlug(ctx.Request.Context(), title, primitive.NilObjectID)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	image, err := p.saveImage(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	tags, ok := formTags(ctx)
	if !ok {
		tags = []string{}
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		Excerpt:  utils.SanitizeStrict(strings.TrimSpace(ctx.PostForm("excerpt"))),
		Image:    image,
		Category: category,
		Tags:     tags,
		Slug:     slug,
		AuthorID: requester,
		Status:   status,
		ReadTime: models.DefaultReadTime,
	}

	if err := p.posts.Create(ctx.Request.Context(), &post); err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(publicListCachePrefix)

	item, err := p.withAuthor(ctx.Request.Context(), post)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Update applies a partial update to an owned post: only supplied fields
// overwrite existing values, and a new title regenerates the slug.
func (p *PostController) Update(ctx *gin.Context) {
	requester, ok := getRequesterID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	post, err := p.posts.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !policy.CanAccess(requester, post, policy.ActionUpdate) {
		utils.Error(ctx, http.StatusForbidden, "Access denied")
		return
	}

	if title, ok := formValue(ctx, "title"); ok {
		post.Title = utils.SanitizeStrict(title)
		slug, err := p.uniqueSlug(ctx.Request.Context(), post.Title, post.ID)
		if err != nil {
			utils.ServerError(ctx, err)
			return
		}
		post.Slug = slug
	}
	if content, ok := formValue(ctx, "content"); ok {
		post.Content = utils.Sanitize(content)
	}
	if excerpt, ok := formValue(ctx, "excerpt"); ok {
		post.Excerpt = utils.SanitizeStrict(excerpt)
	}
	if status, ok := formValue(ctx, "status"); ok {
		if !models.ValidStatus(status) {
			utils.ValidationFailed(ctx, []gin.H{{"field": "status", "message": "status must be draft or published"}})
			return
		}
		post.Status = status
	}
	if category, ok := formValue(ctx, "category"); ok {
		post.Category = category
	}
	if tags, ok := formTags(ctx); ok {
		post.Tags = tags
	}

	image, err := p.saveImage(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if image != "" {
		post.Image = image
	}

	if err := p.posts.Save(ctx.Request.Context(), post); err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(publicListCachePrefix)

	item, err := p.withAuthor(ctx.Request.Context(), *post)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete removes an owned post.
func (p *PostController) Delete(ctx *gin.Context) {
	requester, ok := getRequesterID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	post, err := p.posts.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !policy.CanAccess(requester, post, policy.ActionDelete) {
		utils.Error(ctx, http.StatusForbidden, "Access denied")
		return
	}

	if err := p.posts.Delete(ctx.Request.Context(), post.ID); err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(publicListCachePrefix)
	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// uniqueSlug derives the slug from a title and disambiguates collisions with
// a numeric suffix: slug, slug-2, slug-3 ...
func (p *PostController) uniqueSlug(ctx context.Context, title string, exclude primitive.ObjectID) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		return "", nil
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := p.posts.SlugExists(ctx, candidate, exclude)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// withAuthor attaches author name and email to a post response.
func (p *PostController) withAuthor(ctx context.Context, post models.Post) (gin.H, error) {
	items, err := p.withAuthors(ctx, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func (p *PostController) withAuthors(ctx context.Context, posts []models.Post) ([]gin.H, error) {
	ids := make([]primitive.ObjectID, 0, len(posts))
	seen := map[primitive.ObjectID]struct{}{}
	for _, post := range posts {
		if _, ok := seen[post.AuthorID]; !ok {
			seen[post.AuthorID] = struct{}{}
			ids = append(ids, post.AuthorID)
		}
	}

	authors, err := p.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		tags := post.Tags
		if tags == nil {
			tags = []string{}
		}
		item := gin.H{
			"id":        post.ID.Hex(),
			"title":     post.Title,
			"content":   post.Content,
			"excerpt":   post.Excerpt,
			"image":     post.Image,
			"category":  post.Category,
			"tags":      tags,
			"slug":      post.Slug,
			"status":    post.Status,
			"featured":  post.Featured,
			"readTime":  post.ReadTime,
			"createdAt": post.CreatedAt,
			"updatedAt": post.UpdatedAt,
		}
		if author, ok := authors[post.AuthorID]; ok {
			item["author"] = gin.H{"id": author.ID.Hex(), "name": author.Name, "email": author.Email}
		} else {
			item["author"] = gin.H{"id": post.AuthorID.Hex()}
		}
		items = append(items, item)
	}
	return items, nil
}

// getRequesterID reads the identity placed in context by the access gate.
func getRequesterID(ctx *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// formValue reports a multipart field that is present and non-empty; empty
// or omitted fields keep their previous value under partial-update semantics.
func formValue(ctx *gin.Context, key string) (string, bool) {
	v, ok := ctx.GetPostForm(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// formTags reads the structured tags list: one value per repeated form field.
func formTags(ctx *gin.Context) ([]string, bool) {
	values, ok := ctx.GetPostFormArray("tags")
	if !ok {
		return nil, false
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, true
}

func parsePagination(pageStr, limitStr string) (int, int) {
	page, limit := 1, 10
	if n, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limitStr)); err == nil && n > 0 && n <= 100 {
		limit = n
	}
	return page, limit
}

func requiredFieldErrors(title, content string) []gin.H {
	errs := []gin.H{}
	if title == "" {
		errs = append(errs, gin.H{"field": "title", "message": "title is required"})
	}
	if content == "" {
		errs = append(errs, gin.H{"field": "content", "message": "content is required"})
	}
	return errs
}
