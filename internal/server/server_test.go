package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarvasva/internal/auth"
	"sarvasva/internal/config"
	"sarvasva/internal/models"
	"sarvasva/internal/realtime"
	"sarvasva/internal/realtime/bus"
	repo "sarvasva/internal/repository"
	rtr "sarvasva/internal/router"
)

type testServer struct {
	handler http.Handler
	hub     *realtime.Hub
	cfg     *config.ServerConfig
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	oldConfig, oldRepo := config.Config, repo.Repository
	t.Cleanup(func() {
		config.Config = oldConfig
		repo.Repository = oldRepo
	})

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.UploadDir = filepath.Join(dir, "uploads")
	config.Config = cfg

	r, err := NewRepository(cfg)
	require.NoError(t, err)
	repo.Repository = r

	hub := realtime.NewHub()
	return &testServer{handler: Handler(hub, bus.NewLocalBus(hub)), hub: hub, cfg: cfg}
}

func (ts *testServer) do(t *testing.T, method string, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func as(guestID string) map[string]string {
	return map[string]string{auth.GuestIDHeader: guestID}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp rtr.ErrResponse
	decodeBody(t, rec, &resp)
	return resp.Message
}

func createCourse(t *testing.T, ts *testServer, title string) *models.Course {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/courses", map[string]interface{}{"title": title, "category": "programming", "price": 10}, as("instructor"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var course models.Course
	decodeBody(t, rec, &course)
	return &course
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarvasva Backend Running")
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/auth/profile", nil, map[string]string{auth.GuestIDHeader: "g1", auth.GuestNameHeader: "Asha"})
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "g1", user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, models.RoleGuest, user.Role)

	rec = ts.do(t, http.MethodPut, "/api/auth/profile", map[string]interface{}{"bio": "Learner", "credits": 999, "theme": "dark"}, as("g1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	decodeBody(t, rec, &raw)
	assert.Equal(t, "Learner", raw["bio"])
	assert.Equal(t, float64(0), raw["credits"])
	assert.Equal(t, "dark", raw["theme"])

	// Callers without a header share the default guest.
	rec = ts.do(t, http.MethodGet, "/api/auth/profile", nil, nil)
	decodeBody(t, rec, &user)
	assert.Equal(t, "guest", user.ID)
}

func TestGetUnknownCourse(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/courses/unknown-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "course not found", errorMessage(t, rec))
}

func TestCreateCourseValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/courses", map[string]interface{}{"description": "no title"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", errorMessage(t, rec))

	rec = ts.do(t, http.MethodPost, "/api/courses", map[string]interface{}{"title": "Go", "price": -1}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/courses", map[string]interface{}{
		"title":  "Go",
		"videos": []map[string]interface{}{{"videoUrl": "https://example.com/0"}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "videos[0].title is required", errorMessage(t, rec))
}

func TestCoursesAndEnrollment(t *testing.T) {
	ts := newTestServer(t)
	c := createCourse(t, ts, "Intro to Go")
	createCourse(t, ts, "Databases")

	rec := ts.do(t, http.MethodGet, "/api/courses?search=go", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []models.Course
	decodeBody(t, rec, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, c.ID, courses[0].ID)

	for i := 0; i < 2; i++ {
		rec = ts.do(t, http.MethodPost, "/api/courses/"+c.ID+"/enroll", nil, as("g1"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, errorMessage(t, rec), "Enrolled in")
	}

	rec = ts.do(t, http.MethodGet, "/api/students/g1/enrolled", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var enrolled []string
	decodeBody(t, rec, &enrolled)
	assert.Equal(t, []string{c.ID}, enrolled)

	rec = ts.do(t, http.MethodGet, "/api/courses/"+c.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var course models.Course
	decodeBody(t, rec, &course)
	assert.Equal(t, []string{"g1"}, course.EnrolledStudents)

	rec = ts.do(t, http.MethodPost, "/api/courses/missing/enroll", nil, as("g1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/courses/"+c.ID+"/analytics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var analytics models.CourseAnalytics
	decodeBody(t, rec, &analytics)
	assert.Equal(t, 1, analytics.NumEnrolled)
}

func TestCompleteCourseCredits(t *testing.T) {
	ts := newTestServer(t)

	for i := 1; i <= 3; i++ {
		rec := ts.do(t, http.MethodPost, "/api/credits/complete-course", nil, as("g1"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.CompleteCourseResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 50, resp.CreditsEarned)
		assert.Equal(t, 50*i, resp.Credits)
	}

	rec := ts.do(t, http.MethodGet, "/api/students/g1/credits", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.CreditsSummary
	decodeBody(t, rec, &summary)
	assert.Equal(t, 150, summary.Credits)
	assert.Len(t, summary.History, 3)

	c := createCourse(t, ts, "Intro to Go")
	rec = ts.do(t, http.MethodPost, "/api/students/g2/complete-course", map[string]string{"courseId": c.ID}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/students/g2/completed", nil, nil)
	var completed []models.CompletedCourse
	decodeBody(t, rec, &completed)
	require.Len(t, completed, 1)
	assert.Equal(t, c.ID, completed[0].CourseID)
	assert.Equal(t, "Intro to Go", completed[0].CourseTitle)
	assert.Equal(t, 50, completed[0].CreditsEarned)
	assert.NotNil(t, completed[0].CompletedAt)

	rec = ts.do(t, http.MethodPost, "/api/credits/complete-course", map[string]string{"courseId": "missing"}, as("g1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatMessageCreatesChat(t *testing.T) {
	ts := newTestServer(t)
	subscriber := ts.hub.Join("C1", "watcher")
	before := time.Now().UnixMilli()

	rec := ts.do(t, http.MethodPost, "/api/chat/course/C1/message", map[string]string{"message": "hi"}, as("G1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/chat/course/C1", nil, as("G1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var chat models.Chat
	decodeBody(t, rec, &chat)
	assert.Equal(t, "C1", chat.CourseID)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, "G1", chat.Messages[0].GuestID)
	assert.Equal(t, "hi", chat.Messages[0].Message)
	assert.GreaterOrEqual(t, chat.Messages[0].Timestamp, before)

	select {
	case msg := <-subscriber.Outbound:
		assert.Equal(t, realtime.EventChatMessage, msg.Event)
		event, ok := msg.Data.(rtr.ChatMessageEvent)
		require.True(t, ok)
		assert.Equal(t, "hi", event.Message.Message)
	case <-time.After(time.Second):
		t.Fatal("chat message was not published")
	}

	rec = ts.do(t, http.MethodPost, "/api/chat/course/C1/message", map[string]string{}, as("G1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message is required", errorMessage(t, rec))
}

func uploadDocument(t *testing.T, ts *testServer, path string, name string, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("title", "My notes"))
	require.NoError(t, mw.WriteField("type", "notes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestDocuments(t *testing.T) {
	ts := newTestServer(t)

	rec := uploadDocument(t, ts, "/api/documents/students/g1/documents/upload", "notes.txt", "channels and goroutines")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc models.Document
	decodeBody(t, rec, &doc)
	assert.Equal(t, "g1", doc.UserID)
	assert.Equal(t, "My notes", doc.Title)
	assert.FileExists(t, filepath.Join(ts.cfg.UploadDir, doc.FileName))

	// The same documents are reachable under /students.
	rec = ts.do(t, http.MethodGet, "/api/students/g1/documents", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var docs []models.Document
	decodeBody(t, rec, &docs)
	require.Len(t, docs, 1)

	rec = ts.do(t, http.MethodPost, "/api/documents/students/g1/documents/"+doc.ID+"/summarize", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &doc)
	assert.True(t, doc.IsSummarized)
	assert.Contains(t, doc.Summary, "channels and goroutines")

	rec = ts.do(t, http.MethodDelete, "/api/documents/students/g2/documents/"+doc.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/students/g1/documents/"+doc.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := os.Stat(filepath.Join(ts.cfg.UploadDir, doc.FileName))
	assert.True(t, os.IsNotExist(err))

	rec = uploadDocument(t, ts, "/api/students/g1/documents/upload", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a file is required", errorMessage(t, rec))
}

func TestAssessmentSubmission(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"title":       "Go basics",
		"totalPoints": 10,
		"questions": []map[string]interface{}{
			{"question": "Go is compiled", "type": "true-false", "correctAnswer": "True"},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a models.Assessment
	decodeBody(t, rec, &a)

	submit := map[string]interface{}{"answers": []map[string]interface{}{{"index": 0, "answer": "True"}}}
	rec = ts.do(t, http.MethodPost, "/api/assessments/"+a.ID+"/submit", submit, as("g1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var submission models.Submission
	decodeBody(t, rec, &submission)
	assert.Equal(t, "g1", submission.GuestID)
	assert.Equal(t, 10, submission.Score)

	rec = ts.do(t, http.MethodPost, "/api/assessments/"+a.ID+"/submit", submit, as("g1"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/assessments/"+a.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &a)
	assert.Len(t, a.Submissions, 1)

	rec = ts.do(t, http.MethodGet, "/api/assessments/"+a.ID+"/analytics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var analytics models.AssessmentAnalytics
	decodeBody(t, rec, &analytics)
	assert.Equal(t, 1, analytics.NumSubmissions)

	rec = ts.do(t, http.MethodPost, "/api/assessments", map[string]interface{}{"title": "Empty", "questions": []interface{}{}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLiveClassStatus(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/live-classes", map[string]interface{}{
		"title":       "Office hours",
		"scheduledAt": "2024-03-02T10:00:00Z",
	}, as("host"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lc models.LiveClass
	decodeBody(t, rec, &lc)
	assert.Equal(t, "host", lc.HostGuestID)
	assert.Equal(t, 60, lc.Duration)

	path := "/api/live-classes/" + lc.ID + "/status"

	rec = ts.do(t, http.MethodPut, path, map[string]bool{"isActive": true, "isCompleted": true}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, path, map[string]bool{"isCompleted": true}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPut, path, map[string]bool{"isActive": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &lc)
	assert.True(t, lc.IsActive)

	rec = ts.do(t, http.MethodPut, path, map[string]bool{"isCompleted": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &lc)
	assert.True(t, lc.IsCompleted)

	rec = ts.do(t, http.MethodGet, "/api/live-classes/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideosRequireAdminKey(t *testing.T) {
	ts := newTestServer(t)
	ts.cfg.AdminKey = "secret"
	c := createCourse(t, ts, "Intro to Go")

	video := map[string]interface{}{"title": "Setup", "videoUrl": "https://example.com/v.mp4", "duration": 120}
	rec := ts.do(t, http.MethodPost, "/api/videos/"+c.ID, video, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/videos/"+c.ID, video, map[string]string{auth.AdminKeyHeader: "secret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/api/videos/"+c.ID+"/0/subtitles", map[string]string{"language": "hi", "text": "namaste"}, map[string]string{auth.AdminKeyHeader: "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/api/videos/"+c.ID+"/7/board-text", map[string]interface{}{"text": "x"}, map[string]string{auth.AdminKeyHeader: "secret"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/videos/"+c.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var videos []models.Video
	decodeBody(t, rec, &videos)
	require.Len(t, videos, 1)
	assert.Equal(t, "namaste", videos[0].Subtitles["hi"])
}

func TestCorruptCollection(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(ts.cfg.DataDir, "courses.json"), []byte("{not json"), 0o644))

	rec := ts.do(t, http.MethodGet, "/api/courses", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, errorMessage(t, rec))
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", auth.GuestIDHeader)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
