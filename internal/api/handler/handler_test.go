package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/api/middleware"
	"profguide/backend/internal/api/validation"
	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.AuthResponse
	registerErr    error
	loginResult    *dto.AuthResponse
	loginErr       error
	meResult       *dto.UserResponse
	meErr          error
	meCalledWith   uint
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Me(_ context.Context, userID uint) (*dto.UserResponse, error) {
	m.meCalledWith = userID
	return m.meResult, m.meErr
}

// ── Mock RatingService ──

type mockRatingService struct {
	submitID    uint
	submitErr   error
	submitEmail string
	submitReq   *dto.SubmitRatingRequest
	list        []dto.RatingResponse
	filter      dto.OfferingFilter
	stats       *dto.RatingStatsResponse
}

func (m *mockRatingService) Submit(_ context.Context, email string, req *dto.SubmitRatingRequest) (uint, error) {
	m.submitEmail = email
	m.submitReq = req
	return m.submitID, m.submitErr
}
func (m *mockRatingService) ListByProfessor(_ context.Context, _ uint, filter dto.OfferingFilter) ([]dto.RatingResponse, error) {
	m.filter = filter
	return m.list, nil
}
func (m *mockRatingService) Stats(_ context.Context) (*dto.RatingStatsResponse, error) {
	return m.stats, nil
}

// ── Mock ProfessorService ──

type mockProfessorService struct {
	detail    *dto.ProfessorDetailResponse
	detailErr error
	viewErr   error
	createErr error
	deleteErr error
}

func (m *mockProfessorService) Search(_ context.Context, _ string) ([]dto.ProfessorSummary, error) {
	return []dto.ProfessorSummary{}, nil
}
func (m *mockProfessorService) Underrated(_ context.Context) ([]dto.UnderratedProfessor, error) {
	return []dto.UnderratedProfessor{}, nil
}
func (m *mockProfessorService) GetDetail(_ context.Context, _ uint) (*dto.ProfessorDetailResponse, error) {
	return m.detail, m.detailErr
}
func (m *mockProfessorService) ListOfferings(_ context.Context, _ uint) ([]dto.ProfessorOfferingItem, error) {
	return []dto.ProfessorOfferingItem{}, nil
}
func (m *mockProfessorService) RatingDistribution(_ context.Context, _ uint) (*dto.RatingDistributionResponse, error) {
	return &dto.RatingDistributionResponse{}, nil
}
func (m *mockProfessorService) TagDistribution(_ context.Context, _ uint, _ dto.OfferingFilter) ([]dto.TagCountResponse, error) {
	return []dto.TagCountResponse{}, nil
}
func (m *mockProfessorService) RecordView(_ context.Context, _ uint) error { return m.viewErr }
func (m *mockProfessorService) ListAdmin(_ context.Context) ([]dto.AdminProfessorResponse, error) {
	return nil, nil
}
func (m *mockProfessorService) Available(_ context.Context, _ uint) ([]model.Professor, error) {
	return nil, nil
}
func (m *mockProfessorService) Create(_ context.Context, _ *dto.SaveProfessorRequest) (uint, error) {
	return 9, m.createErr
}
func (m *mockProfessorService) Update(_ context.Context, _ uint, _ *dto.SaveProfessorRequest) error {
	return nil
}
func (m *mockProfessorService) Delete(_ context.Context, _ uint) error { return m.deleteErr }

// ── Mock EnrollmentService ──

type mockEnrollmentService struct {
	enrolled bool
}

func (m *mockEnrollmentService) Verify(_ context.Context, _ uint, _ string) (bool, error) {
	return m.enrolled, nil
}
func (m *mockEnrollmentService) Create(_ context.Context, _ *dto.CreateEnrollmentRequest) (uint, error) {
	return 0, service.ErrEnrollmentExists
}
func (m *mockEnrollmentService) ListByAssignment(_ context.Context, _ uint) ([]dto.EnrollmentResponse, error) {
	return nil, nil
}
func (m *mockEnrollmentService) Delete(_ context.Context, _ uint, _ string) error {
	return service.ErrEnrollmentHasRating
}

// ── Mock ExportService ──

type mockExportService struct{}

func (m *mockExportService) ExportRatings(_ context.Context) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("PK-fake"), "profguide_ratings_20260101.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func perform(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(w *httptest.ResponseRecorder) string {
	var body response.ErrorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body.Error
}

// withUser 模拟 JWTAuth 注入的上下文
func withUser(id uint, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextEmail, email)
		c.Next()
	}
}

func validSubmitBody() map[string]interface{} {
	return map[string]interface{}{
		"professor_id":      "1",
		"course_id":         2,
		"semester_id":       3,
		"rating":            5,
		"course_difficulty": 3,
		"course_quality":    4,
		"course_liking":     5,
		"review":            strings.Repeat("r", 100),
		"grade":             "A",
		"course_type":       "online",
		"tags":              []interface{}{1, "2"},
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Register_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"domain", &service.EmailDomainError{Domain: "usf.edu"}, http.StatusBadRequest, "Only @usf.edu email addresses are allowed"},
		{"not enrolled", service.ErrEmailNotEnrolled, http.StatusForbidden, "Email not found in course enrollments. Please enroll in a course first."},
		{"duplicate", service.ErrEmailRegistered, http.StatusBadRequest, "Email already registered"},
		{"store", errors.New("disk I/O error"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{registerErr: tc.err})
			r := gin.New()
			r.POST("/register", h.Register)

			w := perform(r, http.MethodPost, "/register", jsonBody(dto.RegisterRequest{
				Email: "a@b.com", Password: "secret1", DisplayName: "A",
			}))
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if got := errorMessage(w); got != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/register", h.Register)

	w := perform(r, http.MethodPost, "/register", jsonBody(map[string]string{"email": "a@usf.edu", "password": "123"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if got := errorMessage(w); got != "password must be at least 6 characters long" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	isAdmin := false
	mock := &mockAuthService{loginResult: &dto.AuthResponse{
		Token: "tok",
		User:  dto.UserResponse{ID: 1, Email: "s@usf.edu", DisplayName: "S", IsAdmin: &isAdmin},
	}}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/login", h.Login)

	w := perform(r, http.MethodPost, "/login", jsonBody(dto.LoginRequest{Email: "s@usf.edu", Password: "secret1"}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	user, _ := resp["user"].(map[string]interface{})
	if resp["token"] != "tok" || user["isAdmin"] != false || user["displayName"] != "S" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	mock.loginErr = service.ErrInvalidCredentials
	w = perform(r, http.MethodPost, "/login", jsonBody(dto.LoginRequest{Email: "s@usf.edu", Password: "bad"}))
	if w.Code != http.StatusUnauthorized || errorMessage(w) != "Invalid credentials" {
		t.Errorf("expected 401 Invalid credentials, got %d %q", w.Code, errorMessage(w))
	}
}

func TestAuthHandler_Me(t *testing.T) {
	mock := &mockAuthService{meResult: &dto.UserResponse{ID: 4, Email: "me@usf.edu"}}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.GET("/me", h.Me)
	if w := perform(r, http.MethodGet, "/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user context, got %d", w.Code)
	}

	r = gin.New()
	r.GET("/me", withUser(4, "me@usf.edu"), h.Me)
	w := perform(r, http.MethodGet, "/me", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.meCalledWith != 4 {
		t.Errorf("expected Me(4), got Me(%d)", mock.meCalledWith)
	}
}

// ═══════════════════════════════════════════════════════════
// RatingHandler
// ═══════════════════════════════════════════════════════════

func TestRatingHandler_Submit_Success(t *testing.T) {
	mock := &mockRatingService{submitID: 12}
	h := NewRatingHandler(mock)
	r := gin.New()
	r.POST("/ratings", withUser(1, "student@usf.edu"), h.Submit)

	w := perform(r, http.MethodPost, "/ratings", jsonBody(validSubmitBody()))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.SubmitRatingResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.ID != 12 || resp.Message != "Rating submitted successfully" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if mock.submitEmail != "student@usf.edu" {
		t.Errorf("email should come from token, got %q", mock.submitEmail)
	}
	if mock.submitReq.ProfessorID != 1 || len(mock.submitReq.Tags) != 2 || mock.submitReq.Tags[1] != 2 {
		t.Errorf("string ids should be accepted: %+v", mock.submitReq)
	}
}

func TestRatingHandler_Submit_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"short review", service.ErrReviewTooShort, http.StatusBadRequest, "Review must be at least 100 characters long"},
		{"course type", service.ErrInvalidCourseType, http.StatusBadRequest, "Course type must be either online or offline"},
		{"combination", service.ErrOfferingNotFound, http.StatusNotFound, "Course-professor combination not found"},
		{"not enrolled", service.ErrStudentNotEnrolled, http.StatusForbidden, "Student not enrolled in this course"},
		{"already rated", service.ErrAlreadyRated, http.StatusBadRequest, "You have already submitted a rating for this course. You can only submit one rating per course."},
		{"unknown tag", service.ErrUnknownTag, http.StatusBadRequest, "Unknown tag"},
		{"store", errors.New("database is locked"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRatingHandler(&mockRatingService{submitErr: tc.err})
			r := gin.New()
			r.POST("/ratings", withUser(1, "student@usf.edu"), h.Submit)

			w := perform(r, http.MethodPost, "/ratings", jsonBody(validSubmitBody()))
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if got := errorMessage(w); got != tc.message {
				t.Errorf("expected %q, got %q", tc.message, got)
			}
		})
	}
}

func TestRatingHandler_Submit_Binding(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"rating out of range", func(b map[string]interface{}) { b["rating"] = 6 }},
		{"missing difficulty", func(b map[string]interface{}) { delete(b, "course_difficulty") }},
		{"bad grade", func(b map[string]interface{}) { b["grade"] = "E" }},
		{"missing professor", func(b map[string]interface{}) { b["professor_id"] = "" }},
		{"non numeric id", func(b map[string]interface{}) { b["course_id"] = "abc" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockRatingService{}
			h := NewRatingHandler(mock)
			r := gin.New()
			r.POST("/ratings", withUser(1, "student@usf.edu"), h.Submit)

			body := validSubmitBody()
			tc.mutate(body)
			w := perform(r, http.MethodPost, "/ratings", jsonBody(body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if mock.submitReq != nil {
				t.Error("service should not be called on invalid body")
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ProfessorHandler
// ═══════════════════════════════════════════════════════════

func TestProfessorHandler_Details(t *testing.T) {
	mock := &mockProfessorService{detailErr: service.ErrProfessorNotFound}
	h := NewProfessorHandler(mock, &mockRatingService{})
	r := gin.New()
	r.GET("/professors/:id/details", h.GetDetails)

	w := perform(r, http.MethodGet, "/professors/7/details", nil)
	if w.Code != http.StatusNotFound || errorMessage(w) != "Professor not found" {
		t.Errorf("expected 404 Professor not found, got %d %q", w.Code, errorMessage(w))
	}

	if w := perform(r, http.MethodGet, "/professors/abc/details", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestProfessorHandler_ListRatings_Filter(t *testing.T) {
	ratings := &mockRatingService{list: []dto.RatingResponse{}}
	h := NewProfessorHandler(&mockProfessorService{}, ratings)
	r := gin.New()
	r.GET("/professors/:id/ratings", h.ListRatings)

	w := perform(r, http.MethodGet, "/professors/1/ratings?course_id=2&semester_id=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ratings.filter.CourseID != 2 || ratings.filter.SemesterID != 3 {
		t.Errorf("filter not bound: %+v", ratings.filter)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestProfessorHandler_View(t *testing.T) {
	mock := &mockProfessorService{}
	h := NewProfessorHandler(mock, &mockRatingService{})
	r := gin.New()
	r.POST("/professors/:id/view", h.RecordView)

	w := perform(r, http.MethodPost, "/professors/1/view", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"success":true}` {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}

	mock.viewErr = service.ErrProfessorNotFound
	if w := perform(r, http.MethodPost, "/professors/1/view", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestProfessorHandler_AdminWrites(t *testing.T) {
	mock := &mockProfessorService{}
	h := NewProfessorHandler(mock, &mockRatingService{})
	r := gin.New()
	r.POST("/professors", h.Create)
	r.DELETE("/professors/:id", h.Delete)

	w := perform(r, http.MethodPost, "/professors", jsonBody(map[string]interface{}{"name": "Bob", "department_id": "1"}))
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"id":9}` {
		t.Errorf("unexpected create response %d %s", w.Code, w.Body.String())
	}

	mock.createErr = service.ErrDepartmentNotFound
	w = perform(r, http.MethodPost, "/professors", jsonBody(map[string]interface{}{"name": "Bob", "department_id": 5}))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing department, got %d", w.Code)
	}

	w = perform(r, http.MethodDelete, "/professors/9", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"message":"Deleted"}` {
		t.Errorf("unexpected delete response %d %s", w.Code, w.Body.String())
	}
	mock.deleteErr = service.ErrProfessorInUse
	if w := perform(r, http.MethodDelete, "/professors/9", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when in use, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EnrollmentHandler / ExportHandler
// ═══════════════════════════════════════════════════════════

func TestEnrollmentHandler_Verify(t *testing.T) {
	h := NewEnrollmentHandler(&mockEnrollmentService{enrolled: true})
	r := gin.New()
	r.GET("/enrollments/verify", h.Verify)

	w := perform(r, http.MethodGet, "/enrollments/verify?professor_course_semester_id=1&email=s@usf.edu", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"isEnrolled":true}` {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}

	if w := perform(r, http.MethodGet, "/enrollments/verify?email=s@usf.edu", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing params, got %d", w.Code)
	}
}

func TestEnrollmentHandler_Errors(t *testing.T) {
	h := NewEnrollmentHandler(&mockEnrollmentService{})
	r := gin.New()
	r.POST("/enrollments", h.Create)
	r.DELETE("/enrollments/:pcs_id/:student_email", h.Delete)

	w := perform(r, http.MethodPost, "/enrollments", jsonBody(map[string]interface{}{
		"professor_course_semester_id": 1, "student_email": "s@usf.edu",
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate, got %d", w.Code)
	}

	w = perform(r, http.MethodDelete, "/enrollments/1/s@usf.edu", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when rated, got %d", w.Code)
	}
}

func TestExportHandler_Headers(t *testing.T) {
	h := NewExportHandler(&mockExportService{})
	r := gin.New()
	r.GET("/export", h.ExportRatings)

	w := perform(r, http.MethodGet, "/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "profguide_ratings_20260101.xlsx") {
		t.Errorf("unexpected disposition %q", cd)
	}
}
