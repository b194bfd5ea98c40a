package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbem/unbem/config"
	"github.com/unbem/unbem/models"
	"github.com/unbem/unbem/utils"
)

// ForumController manages the anonymous vent feed and its reply threads.
// Posts and replies are append-only: no edit, no delete, no moderation.
type ForumController struct {
	db *gorm.DB
}

// NewForumController creates a new ForumController instance.
func NewForumController(db *gorm.DB) *ForumController {
	return &ForumController{db: db}
}

// Feed change channels. Subscribers reload the whole snapshot per tick, so
// the channel name is the only contract between writers and feeds.
func postsChannel(ns string) string {
	return fmt.Sprintf("unbem:%s:feed:posts", ns)
}

func repliesChannel(ns, postID string) string {
	return fmt.Sprintf("unbem:%s:feed:replies:%s", ns, postID)
}

// ListPosts returns the full post feed ordered ascending by creation time.
func (f *ForumController) ListPosts(ctx *gin.Context) {
	cfg := config.Get()
	cacheKey := fmt.Sprintf("cache:%s:posts:list", cfg.AppNamespace)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.Post
	if err := f.db.Order("created_at ASC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load posts")
		return
	}

	payload := gin.H{"items": posts}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost publishes a new anonymous vent. Empty-after-trim text is
// rejected before any store call; the client keeps its input on failure.
func (f *ForumController) CreatePost(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "text cannot be empty")
		return
	}

	now := time.Now()
	post := models.Post{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: &now,
	}
	if err := f.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to publish your vent")
		return
	}

	cfg := config.Get()
	utils.InvalidateByPrefix(fmt.Sprintf("cache:%s:posts:", cfg.AppNamespace))
	utils.InvalidateByPrefix(fmt.Sprintf("cache:%s:stats", cfg.AppNamespace))
	utils.NotifyChange(postsChannel(cfg.AppNamespace))

	utils.Success(ctx, gin.H{"post": post})
}

// ListReplies returns the reply thread of one post, ascending by creation time.
func (f *ForumController) ListReplies(ctx *gin.Context) {
	postID := ctx.Param("id")
	if err := f.requirePost(ctx, postID); err != nil {
		return
	}

	var replies []models.Reply
	if err := f.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&replies).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load replies")
		return
	}
	utils.Success(ctx, gin.H{"items": replies})
}

// CreateReply attaches a supportive response to an existing post.
func (f *ForumController) CreateReply(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "text cannot be empty")
		return
	}

	postID := ctx.Param("id")
	if err := f.requirePost(ctx, postID); err != nil {
		return
	}

	now := time.Now()
	reply := models.Reply{
		ID:        uuid.NewString(),
		PostID:    postID,
		Text:      text,
		CreatedAt: &now,
	}
	if err := f.db.Create(&reply).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to publish your reply")
		return
	}

	cfg := config.Get()
	utils.InvalidateByPrefix(fmt.Sprintf("cache:%s:stats", cfg.AppNamespace))
	utils.NotifyChange(repliesChannel(cfg.AppNamespace, postID))

	utils.Success(ctx, gin.H{"reply": reply})
}

// requirePost writes the error response itself when the post is missing.
func (f *ForumController) requirePost(ctx *gin.Context, postID string) error {
	var post models.Post
	if err := f.db.Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return err
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return err
	}
	return nil
}
