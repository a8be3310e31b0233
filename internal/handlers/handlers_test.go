package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"careertalk/internal/db"
	"careertalk/internal/middleware"
	"careertalk/internal/router"
	"careertalk/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db.InitTest()
	services.InvalidateTrendingCache()

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("careertalk_session", store))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

// doJSON runs one request, reusing any session cookies collected from
// earlier responses.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("decode response %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, parsed
}

func signup(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()
	w, _ := doJSON(t, r, "POST", "/signup", gin.H{"email": email, "password": "secret1"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup %s: status %d: %s", email, w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func TestVoteRequiresLogin(t *testing.T) {
	r := newTestServer(t)

	w, body := doJSON(t, r, "POST", "/vote", gin.H{"qid": "whatever1"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if body["success"] != false {
		t.Errorf("expected success=false envelope, got %v", body)
	}
}

func TestQuestionVoteFlow(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")
	voter := signup(t, r, "voter@test.com")

	// Author posts a question.
	w, body := doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "이직 타이밍 질문",
		"content":  "지금 회사 2년차인데 고민입니다.",
		"category": "이직",
	}, author)
	if w.Code != http.StatusOK {
		t.Fatalf("create question: status %d: %s", w.Code, w.Body.String())
	}
	qid := body["data"].(map[string]interface{})["qid"].(string)

	// Voter toggles a vote on it.
	w, body = doJSON(t, r, "POST", "/vote", gin.H{"qid": qid}, voter)
	if w.Code != http.StatusOK {
		t.Fatalf("vote: status %d: %s", w.Code, w.Body.String())
	}
	if body["isVoted"] != true || body["voteCount"].(float64) != 1 {
		t.Errorf("first toggle: got %v", body)
	}

	// Second toggle flips back.
	_, body = doJSON(t, r, "POST", "/vote", gin.H{"qid": qid}, voter)
	if body["isVoted"] != false || body["voteCount"].(float64) != 0 {
		t.Errorf("second toggle: got %v", body)
	}

	// Vote on a missing question is a 404.
	w, _ = doJSON(t, r, "POST", "/vote", gin.H{"qid": "gone1234"}, voter)
	if w.Code != http.StatusNotFound {
		t.Errorf("vote on missing question: got %d, want 404", w.Code)
	}
}

func TestCreateQuestionValidationOverHTTP(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")

	w, body := doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "",
		"content":  "x",
		"category": "기타",
	}, author)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if body["success"] != false {
		t.Errorf("expected failure envelope, got %v", body)
	}
}

func TestUpdateQuestionForbiddenOverHTTP(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")
	stranger := signup(t, r, "stranger@test.com")

	_, body := doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "연봉 질문",
		"content":  "내용",
		"category": "연봉",
	}, author)
	qid := body["data"].(map[string]interface{})["qid"].(string)

	w, _ := doJSON(t, r, "PUT", "/questions/"+qid, gin.H{"title": "변조"}, stranger)
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger edit: got %d, want 403", w.Code)
	}

	// Still intact and fetchable.
	w, body = doJSON(t, r, "GET", "/questions/"+qid, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail after forbidden edit: %d", w.Code)
	}
	title := body["data"].(map[string]interface{})["title"].(string)
	if title != "연봉 질문" {
		t.Errorf("title changed: %q", title)
	}
}

func TestLikeFlowOverHTTP(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")
	liker := signup(t, r, "liker@test.com")

	_, body := doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "면접 복장",
		"content":  "내용",
		"category": "면접",
	}, author)
	qid := body["data"].(map[string]interface{})["qid"].(string)

	w, body := doJSON(t, r, "POST", "/like", gin.H{"qid": qid, "action": "like"}, liker)
	if w.Code != http.StatusOK || body["likeCount"].(float64) != 1 {
		t.Fatalf("like: status=%d body=%v", w.Code, body)
	}

	// Redundant like from a stale client is a 409, not a 500.
	w, _ = doJSON(t, r, "POST", "/like", gin.H{"qid": qid, "action": "like"}, liker)
	if w.Code != http.StatusConflict {
		t.Errorf("redundant like: got %d, want 409", w.Code)
	}

	// Anonymous status query still works.
	w, body = doJSON(t, r, "GET", "/like?qid="+qid, nil, nil)
	if w.Code != http.StatusOK || body["likeCount"].(float64) != 1 || body["isLiked"] != false {
		t.Errorf("anon status: status=%d body=%v", w.Code, body)
	}
}

func TestTrendingOverHTTP(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")

	_, body := doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "커리어 전환",
		"content":  "내용",
		"category": "커리어",
	}, author)
	qid := body["data"].(map[string]interface{})["qid"].(string)
	_, _ = doJSON(t, r, "POST", "/vote", gin.H{"qid": qid}, author)

	w, body := doJSON(t, r, "GET", "/questions/trending", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("trending: status %d", w.Code)
	}
	data := body["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("trending listing: got %d entries, want 1", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["trending_score"].(float64) <= 0 {
		t.Errorf("expected positive trending score, got %v", first["trending_score"])
	}
}

func TestDemoLoginFlow(t *testing.T) {
	r := newTestServer(t)

	w, body := doJSON(t, r, "POST", "/auth/demo", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("demo login: status %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if body["user"].(map[string]interface{})["provider"].(string) != "demo" {
		t.Errorf("provider: got %v, want demo", body["user"])
	}

	// The demo session works like any other session.
	w, _ = doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":    "체험 질문",
		"content":  "내용",
		"category": "기타",
	}, cookies)
	if w.Code != http.StatusOK {
		t.Errorf("demo user create question: status %d", w.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestServer(t)
	signup(t, r, "dup@test.com")

	w, body := doJSON(t, r, "POST", "/signup", gin.H{"email": "dup@test.com", "password": "secret1"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: got %d, want 409: %s", w.Code, w.Body.String())
	}
	if body["success"] != false {
		t.Errorf("expected failure envelope, got %v", body)
	}
}

func TestTrendingHidesAnonymousAuthorOnEveryRequest(t *testing.T) {
	r := newTestServer(t)
	author := signup(t, r, "author@test.com")

	_, _ = doJSON(t, r, "POST", "/questions/create", gin.H{
		"title":     "익명 질문",
		"content":   "내용",
		"category":  "기타",
		"anonymous": true,
	}, author)

	// Second request serves from the listing cache; it must come back
	// anonymized too, without the first request's rewrite bleeding into
	// cached state.
	for i := 0; i < 2; i++ {
		w, body := doJSON(t, r, "GET", "/questions/trending", nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("trending #%d: status %d", i, w.Code)
		}
		first := body["data"].([]interface{})[0].(map[string]interface{})
		user := first["user"].(map[string]interface{})
		if first["user_id"].(float64) != 0 || user["username"].(string) != "익명" {
			t.Errorf("trending #%d leaked the anonymous author: %v", i, user)
		}
	}
}
