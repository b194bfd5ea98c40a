package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/unbem/unbem/config"
	"github.com/unbem/unbem/feed"
	"github.com/unbem/unbem/models"
	"github.com/unbem/unbem/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedController serves the live forum view over a websocket. Each connection
// owns exactly one post-feed subscription plus one reply-feed subscription
// per post the client currently watches.
type FeedController struct {
	db *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{db: db}
}

// feedFrame is one message pushed to the client: either a full snapshot that
// replaces the named feed, or a terminal error for it.
type feedFrame struct {
	Type    string      `json:"type"` // snapshot | error
	Feed    string      `json:"feed"` // posts | replies
	PostID  string      `json:"post_id,omitempty"`
	Items   []feed.Item `json:"items,omitempty"`
	Message string      `json:"message,omitempty"`
}

// watchRequest is the client's declaration of which posts it is rendering.
// The server reconciles reply subscriptions against this set.
type watchRequest struct {
	Watch []string `json:"watch"`
}

func (fc *FeedController) postSource() feed.Source {
	return feed.SourceFunc(func(ctx context.Context) ([]feed.Item, error) {
		var posts []models.Post
		if err := fc.db.WithContext(ctx).Order("created_at ASC").Find(&posts).Error; err != nil {
			return nil, err
		}
		items := make([]feed.Item, 0, len(posts))
		for _, p := range posts {
			items = append(items, feed.Item{ID: p.ID, Text: p.Text, CreatedAt: p.CreatedAt})
		}
		return items, nil
	})
}

func (fc *FeedController) replySource(postID string) feed.Source {
	return feed.SourceFunc(func(ctx context.Context) ([]feed.Item, error) {
		var replies []models.Reply
		if err := fc.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&replies).Error; err != nil {
			return nil, err
		}
		items := make([]feed.Item, 0, len(replies))
		for _, r := range replies {
			items = append(items, feed.Item{ID: r.ID, Text: r.Text, CreatedAt: r.CreatedAt})
		}
		return items, nil
	})
}

// Live upgrades the request to a websocket and streams feed snapshots until
// the client disconnects. All subscriptions opened for the connection are
// closed on teardown, whatever path ends the session.
func (fc *FeedController) Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Sugar.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Get()
	outbound := make(chan feedFrame, 16)
	send := func(fr feedFrame) {
		select {
		case outbound <- fr:
		case <-ctx.Done():
		}
	}

	openFeed := func(name, postID, channel string, src feed.Source) *feed.Handle {
		ticks, stop := utils.SubscribeChanges(ctx, channel)
		return feed.Open(ctx, feed.Options{
			Source: src,
			Notify: ticks,
			OnSnapshot: func(items []feed.Item) {
				send(feedFrame{Type: "snapshot", Feed: name, PostID: postID, Items: items})
			},
			OnError: func(err error) {
				utils.Sugar.Warnf("%s feed frozen: %v", name, err)
				send(feedFrame{Type: "error", Feed: name, PostID: postID, Message: "could not load the feed, please reload"})
			},
			Release: stop,
		})
	}

	posts := openFeed("posts", "", postsChannel(cfg.AppNamespace), fc.postSource())
	defer posts.Close()

	registry := feed.NewRegistry()
	defer registry.Close()

	// Read loop: watch-set reconciliation doubles as disconnect detection.
	stopChan := make(chan struct{})
	go func() {
		defer close(stopChan)
		for {
			var req watchRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			registry.Sync(req.Watch, func(id string) *feed.Handle {
				return openFeed("replies", id, repliesChannel(cfg.AppNamespace, id), fc.replySource(id))
			})
		}
	}()

	for {
		select {
		case fr := <-outbound:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(fr); err != nil {
				utils.Sugar.Warnf("websocket push failed: %v", err)
				return
			}
		case <-stopChan:
			return
		}
	}
}
