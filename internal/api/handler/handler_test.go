package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/repository"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult   *dto.RegisterResponse
	registerErr      error
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock HackathonService ──

type mockHackathonService struct {
	createResult   *dto.HackathonResponse
	createErr      error
	getResult      *dto.HackathonResponse
	getErr         error
	listResult     []dto.HackathonResponse
	listErr        error
	updateResult   *dto.HackathonResponse
	updateErr      error
	deleteErr      error
	criteriaResult *dto.HackathonResponse
	criteriaErr    error
	fieldsResult   *dto.HackathonResponse
	fieldsErr      error
}

func (m *mockHackathonService) Create(_ context.Context, _ *dto.CreateHackathonRequest, _ string) (*dto.HackathonResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockHackathonService) GetByID(_ context.Context, _ string) (*dto.HackathonResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockHackathonService) List(_ context.Context, _ string) ([]dto.HackathonResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockHackathonService) Update(_ context.Context, _ string, _ *dto.UpdateHackathonRequest) (*dto.HackathonResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockHackathonService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockHackathonService) UpdateCriteria(_ context.Context, _ string, _ *dto.UpdateCriteriaRequest) (*dto.HackathonResponse, error) {
	return m.criteriaResult, m.criteriaErr
}
func (m *mockHackathonService) UpdateSubmissionFields(_ context.Context, _ string, _ *dto.UpdateSubmissionFieldsRequest) (*dto.HackathonResponse, error) {
	return m.fieldsResult, m.fieldsErr
}

// ── Mock ProjectService ──

type mockProjectService struct {
	createResult *dto.ProjectResponse
	createErr    error
	getResult    *dto.ProjectResponse
	getErr       error
	listResult   []dto.ProjectResponse
	listErr      error
	updateResult *dto.ProjectResponse
	updateErr    error
	submitResult *dto.ProjectResponse
	submitErr    error
	deleteErr    error
}

func (m *mockProjectService) Create(_ context.Context, _ string, _ *dto.CreateProjectRequest, _ string) (*dto.ProjectResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockProjectService) GetByID(_ context.Context, _ string) (*dto.ProjectResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockProjectService) ListByHackathon(_ context.Context, _ string) ([]dto.ProjectResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProjectService) ListBySession(_ context.Context, _ string) ([]dto.ProjectResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProjectService) Update(_ context.Context, _ string, _ *dto.UpdateProjectRequest, _ string) (*dto.ProjectResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockProjectService) Submit(_ context.Context, _ string, _ string) (*dto.ProjectResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockProjectService) Delete(_ context.Context, _ string, _, _ string) error {
	return m.deleteErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	createResult *dto.AssignmentResponse
	createErr    error
	bulkResult   *dto.BulkAssignResponse
	bulkErr      error
	startResult  *dto.AssignmentResponse
	startErr     error
	deleteErr    error
	getResult    *dto.AssignmentResponse
	getErr       error
	listResult   []dto.AssignmentResponse
	listErr      error
	listFilter   repository.AssignmentFilter
}

func (m *mockAssignmentService) Create(_ context.Context, _ *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAssignmentService) BulkAssign(_ context.Context, _ *dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockAssignmentService) Start(_ context.Context, _ string, _ string) (*dto.AssignmentResponse, error) {
	return m.startResult, m.startErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockAssignmentService) GetByID(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAssignmentService) List(_ context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	m.listFilter = filter
	return m.listResult, m.listErr
}

// ── Mock ScoreService ──

type mockScoreService struct {
	submitResult *dto.ScoreDetailResponse
	submitErr    error
	detailResult *dto.ScoreDetailResponse
	detailErr    error
	submitJudge  string
}

func (m *mockScoreService) Submit(_ context.Context, _ string, judgeID string, _ *dto.SubmitScoreRequest) (*dto.ScoreDetailResponse, error) {
	m.submitJudge = judgeID
	return m.submitResult, m.submitErr
}
func (m *mockScoreService) GetDetail(_ context.Context, _ string) (*dto.ScoreDetailResponse, error) {
	return m.detailResult, m.detailErr
}

// ── Mock LeaderboardService ──

type mockLeaderboardService struct {
	saveResult   *dto.AdminLeaderboardResponse
	saveErr      error
	publicResult *dto.PublicLeaderboardResponse
	publicErr    error
	adminResult  *dto.AdminLeaderboardResponse
	adminErr     error
}

func (m *mockLeaderboardService) Save(_ context.Context, _ string, _ *dto.SaveLeaderboardRequest) (*dto.AdminLeaderboardResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockLeaderboardService) GetPublic(_ context.Context, _ string) (*dto.PublicLeaderboardResponse, error) {
	return m.publicResult, m.publicErr
}
func (m *mockLeaderboardService) GetAdmin(_ context.Context, _ string) (*dto.AdminLeaderboardResponse, error) {
	return m.adminResult, m.adminErr
}

// ── Mock ReportService ──

type mockReportService struct {
	matrixResult *dto.MatrixResponse
	matrixErr    error
	buf          *bytes.Buffer
	filename     string
	exportErr    error
}

func (m *mockReportService) BuildMatrix(_ context.Context, _ string) (*dto.MatrixResponse, error) {
	return m.matrixResult, m.matrixErr
}
func (m *mockReportService) ExportCSV(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.exportErr
}
func (m *mockReportService) ExportExcel(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.exportErr
}
func (m *mockReportService) ExportSchedule(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.exportErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("jti", "test-jti")
	c.Set("token_expires_at", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Register_Success(t *testing.T) {
	mock := &mockAuthService{
		registerResult: &dto.RegisterResponse{
			ID:    "user-1",
			Name:  "测试用户",
			Email: "test@example.com",
			Role:  "participant",
		},
	}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "测试用户",
		Email:    "test@example.com",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrEmailTaken}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "测试用户",
		Email:    "taken@example.com",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "test@example.com",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserResponse{ID: "test-user-id", Name: "测试用户"},
	}
	h := NewAuthHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HackathonHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHackathonHandler_Create_Success(t *testing.T) {
	mock := &mockHackathonService{
		createResult: &dto.HackathonResponse{ID: "hack-1", Title: "春季黑客松", Status: "draft"},
	}
	h := NewHackathonHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/hackathons", jsonBody(dto.CreateHackathonRequest{
		Title: "春季黑客松",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/hackathons", func(c *gin.Context) {
		setAuth(c)
		h.CreateHackathon(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestHackathonHandler_Get_NotFound(t *testing.T) {
	mock := &mockHackathonService{getErr: service.ErrHackathonNotFound}
	h := NewHackathonHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/hackathons/hack-missing", nil)

	r := gin.New()
	r.GET("/hackathons/:id", h.GetHackathon)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestHackathonHandler_UpdateCriteria_SumInvalid(t *testing.T) {
	mock := &mockHackathonService{
		criteriaErr: fmt.Errorf("%w: 当前总分 99，差额 1", service.ErrRubricSumInvalid),
	}
	h := NewHackathonHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("PUT", "/hackathons/hack-1/criteria", jsonBody(dto.UpdateCriteriaRequest{
		Criteria: []dto.CriterionInput{
			{Name: "创新性", MaxScore: 50},
			{Name: "技术实现", MaxScore: 49},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/hackathons/:id/criteria", h.UpdateCriteria)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 {
		t.Errorf("expected error code 12003, got %d", resp.Code)
	}
	// 差额信息要透传给调用方
	if !strings.Contains(resp.Message, "差额 1") {
		t.Errorf("expected message to carry the deficit, got %q", resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// ProjectHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProjectHandler_Submit_AlreadySubmitted(t *testing.T) {
	mock := &mockProjectService{submitErr: service.ErrProjectAlreadySubmitted}
	h := NewProjectHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/projects/proj-1/submit", nil)

	r := gin.New()
	r.POST("/projects/:id/submit", func(c *gin.Context) {
		setAuth(c)
		h.SubmitProject(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestProjectHandler_Update_NotOwner(t *testing.T) {
	mock := &mockProjectService{updateErr: service.ErrProjectNotOwner}
	h := NewProjectHandler(mock)

	w := setupGin()
	name := "改名"
	req := httptest.NewRequest("PUT", "/projects/proj-1", jsonBody(dto.UpdateProjectRequest{
		Name: &name,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/projects/:id", func(c *gin.Context) {
		setAuth(c)
		h.UpdateProject(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Create_Duplicate(t *testing.T) {
	mock := &mockAssignmentService{createErr: service.ErrAssignmentDuplicate}
	h := NewAssignmentHandler(mock, &mockScoreService{})

	w := setupGin()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		SessionID: "6fa459ea-ee8a-3ca4-894e-db77e160355e",
		ProjectID: "6fa459ea-ee8a-3ca4-894e-db77e160355f",
		JudgeID:   "6fa459ea-ee8a-3ca4-894e-db77e1603560",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", h.CreateAssignment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

func TestAssignmentHandler_ListMine_UsesCallerAsJudge(t *testing.T) {
	mock := &mockAssignmentService{listResult: []dto.AssignmentResponse{}}
	h := NewAssignmentHandler(mock, &mockScoreService{})

	w := setupGin()
	req := httptest.NewRequest("GET", "/assignments/mine?status=pending", nil)

	r := gin.New()
	r.GET("/assignments/mine", func(c *gin.Context) {
		setAuth(c)
		h.ListMyAssignments(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.listFilter.JudgeID != "test-user-id" {
		t.Errorf("期望按当前用户过滤评委，实际: %s", mock.listFilter.JudgeID)
	}
	if mock.listFilter.Status != "pending" {
		t.Errorf("期望透传 status 过滤条件，实际: %s", mock.listFilter.Status)
	}
}

func TestAssignmentHandler_Start_StateConflict(t *testing.T) {
	mock := &mockAssignmentService{startErr: service.ErrAssignmentStateConflict}
	h := NewAssignmentHandler(mock, &mockScoreService{})

	w := setupGin()
	req := httptest.NewRequest("POST", "/assignments/asg-1/start", nil)

	r := gin.New()
	r.POST("/assignments/:id/start", func(c *gin.Context) {
		setAuth(c)
		h.StartAssignment(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestAssignmentHandler_SubmitScore_Success(t *testing.T) {
	total := 90
	scoreMock := &mockScoreService{
		submitResult: &dto.ScoreDetailResponse{
			AssignmentID: "asg-1",
			Status:       "completed",
			TotalScore:   &total,
		},
	}
	h := NewAssignmentHandler(&mockAssignmentService{}, scoreMock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/assignments/asg-1/score", jsonBody(dto.SubmitScoreRequest{
		Scores: []dto.CriterionScoreInput{
			{CriterionID: "6fa459ea-ee8a-3ca4-894e-db77e160355e", Score: 90},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/score", func(c *gin.Context) {
		setAuth(c)
		h.SubmitScore(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if scoreMock.submitJudge != "test-user-id" {
		t.Errorf("期望以当前用户身份提交评分，实际: %s", scoreMock.submitJudge)
	}
}

func TestAssignmentHandler_SubmitScore_AlreadyDone(t *testing.T) {
	scoreMock := &mockScoreService{submitErr: service.ErrScoreAlreadyDone}
	h := NewAssignmentHandler(&mockAssignmentService{}, scoreMock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/assignments/asg-1/score", jsonBody(dto.SubmitScoreRequest{
		Scores: []dto.CriterionScoreInput{
			{CriterionID: "6fa459ea-ee8a-3ca4-894e-db77e160355e", Score: 90},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/score", func(c *gin.Context) {
		setAuth(c)
		h.SubmitScore(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestAssignmentHandler_SubmitScore_OutOfRange(t *testing.T) {
	scoreMock := &mockScoreService{submitErr: service.ErrScoreOutOfRange}
	h := NewAssignmentHandler(&mockAssignmentService{}, scoreMock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/assignments/asg-1/score", jsonBody(dto.SubmitScoreRequest{
		Scores: []dto.CriterionScoreInput{
			{CriterionID: "6fa459ea-ee8a-3ca4-894e-db77e160355e", Score: 999},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/score", func(c *gin.Context) {
		setAuth(c)
		h.SubmitScore(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LeaderboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestLeaderboardHandler_GetPublic_Unpublished(t *testing.T) {
	mock := &mockLeaderboardService{
		publicResult: &dto.PublicLeaderboardResponse{
			HackathonID: "hack-1",
			Published:   false,
			Entries:     []dto.LeaderboardEntryResponse{},
		},
	}
	h := NewLeaderboardHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/hackathons/hack-1/leaderboard", nil)

	r := gin.New()
	r.GET("/hackathons/:id/leaderboard", h.GetPublicLeaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestLeaderboardHandler_Save_EntryInvalid(t *testing.T) {
	mock := &mockLeaderboardService{saveErr: service.ErrLeaderboardEntryInvalid}
	h := NewLeaderboardHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("PUT", "/hackathons/hack-1/leaderboard", jsonBody(dto.SaveLeaderboardRequest{
		Entries: []dto.LeaderboardEntryInput{
			{ProjectID: "6fa459ea-ee8a-3ca4-894e-db77e160355e", Rank: 1},
		},
		Published: true,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/hackathons/:id/leaderboard", func(c *gin.Context) {
		setAuth(c)
		h.SaveLeaderboard(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_ExportCSV_Success(t *testing.T) {
	mock := &mockReportService{
		buf:      bytes.NewBufferString("Rank,Project,Submitter,张评委,Average\n1,Alpha,李参赛,90,90.0\n"),
		filename: "scores_hack-1.csv",
	}
	h := NewReportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/hackathons/hack-1/report/export/csv", nil)

	r := gin.New()
	r.GET("/hackathons/:id/report/export/csv", h.ExportCSV)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") {
		t.Errorf("期望附件下载响应头，实际: %s", disposition)
	}
	if !strings.Contains(disposition, "scores_hack-1.csv") {
		t.Errorf("期望文件名出现在响应头中，实际: %s", disposition)
	}
	if !strings.Contains(w.Body.String(), "Rank,Project") {
		t.Error("期望响应体包含 CSV 表头")
	}
}

func TestReportHandler_ExportSchedule_NoSessions(t *testing.T) {
	mock := &mockReportService{exportErr: service.ErrReportNoSessions}
	h := NewReportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/hackathons/hack-1/report/export/schedule", nil)

	r := gin.New()
	r.GET("/hackathons/:id/report/export/schedule", h.ExportSchedule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestReportHandler_GetMatrix_Success(t *testing.T) {
	score := 88
	mock := &mockReportService{
		matrixResult: &dto.MatrixResponse{
			HackathonID: "hack-1",
			Judges:      []dto.JudgeCol{{JudgeID: "judge-1", Name: "张评委"}},
			Rows: []dto.MatrixRow{
				{Rank: 1, ProjectID: "proj-1", ProjectName: "Alpha", Cells: []*int{&score}, Average: 88.0},
			},
		},
	}
	h := NewReportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/hackathons/hack-1/report/matrix", nil)

	r := gin.New()
	r.GET("/hackathons/:id/report/matrix", h.GetMatrix)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
