package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/unbem/unbem/controllers"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	handler(ctx)
	return w
}

// The controller runs with a nil database here on purpose: any attempt to
// persist a rejected payload would panic instead of failing softly.
func TestCreatePost_RejectsBlankText(t *testing.T) {
	f := controllers.NewForumController(nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"text": ""}`},
		{"whitespace only", `{"text": "   \n\t  "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, f.CreatePost, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var resp struct {
				Code int `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response not JSON: %v", err)
			}
			if resp.Code == 0 {
				t.Errorf("blank text reported success: %s", w.Body.String())
			}
		})
	}
}

func TestCreateReply_RejectsBlankText(t *testing.T) {
	f := controllers.NewForumController(nil)

	w := postJSON(t, f.CreateReply, `{"text": "  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
