package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unbem/unbem/calendar"
	"github.com/unbem/unbem/config"
	"github.com/unbem/unbem/middleware"
	"github.com/unbem/unbem/utils"
)

// MoodController exposes the mood calendar: month views and daily check-ins.
// All data is scoped to the caller's anonymous identity; the forum store is
// never involved, so the calendar keeps working when the forum degrades.
type MoodController struct{}

func NewMoodController() *MoodController { return &MoodController{} }

func (m *MoodController) engineFor(identity string) *calendar.Engine {
	cfg := config.Get()
	store := calendar.NewRedisStore(utils.GetRedis(), cfg.AppNamespace, identity)
	return calendar.NewEngine(store, utils.Sugar)
}

// GetMonth returns the calendar grid and streak state for one month.
// Query params year and month (zero-indexed) default to the current month.
func (m *MoodController) GetMonth(ctx *gin.Context) {
	identity, ok := middleware.Identity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month()) - 1
	if v, err := strconv.Atoi(ctx.Query("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(ctx.Query("month")); err == nil {
		month = v
	}
	if month < 0 || month > 11 {
		utils.Error(ctx, http.StatusBadRequest, 40040, "month out of range")
		return
	}

	view := m.engineFor(identity).LoadMonth(ctx.Request.Context(), year, month)
	utils.Success(ctx, gin.H{"month": view})
}

// SelectMood records a mood for one day and returns the recomputed month
// view. Writing twice for the same day replaces the earlier entry.
func (m *MoodController) SelectMood(ctx *gin.Context) {
	identity, ok := middleware.Identity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Year  int    `json:"year" binding:"required"`
		Month int    `json:"month"`
		Day   int    `json:"day" binding:"required"`
		Mood  string `json:"mood" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}
	if req.Month < 0 || req.Month > 11 || req.Day < 1 || req.Day > 31 {
		utils.Error(ctx, http.StatusBadRequest, 40042, "date out of range")
		return
	}

	key := calendar.DateKey{Year: req.Year, Month: req.Month, Day: req.Day}
	view, err := m.engineFor(identity).SelectMood(ctx.Request.Context(), key, calendar.Mood(req.Mood))
	if err != nil {
		if _, known := calendar.Mood(req.Mood).Type(); !known {
			utils.Error(ctx, http.StatusBadRequest, 40043, "unknown mood")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to save mood")
		return
	}
	utils.Success(ctx, gin.H{"month": view})
}
