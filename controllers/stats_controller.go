package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unbem/unbem/config"
	"github.com/unbem/unbem/models"
	"github.com/unbem/unbem/utils"
)

// StatsController serves public forum aggregates.
type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns post and reply totals, cached briefly.
func (s *StatsController) GetStats(ctx *gin.Context) {
	cfg := config.Get()
	cacheKey := fmt.Sprintf("cache:%s:stats", cfg.AppNamespace)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts, replies int64
	if err := s.db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to count posts")
		return
	}
	if err := s.db.Model(&models.Reply{}).Count(&replies).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to count replies")
		return
	}

	payload := gin.H{"posts": posts, "replies": replies}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}
