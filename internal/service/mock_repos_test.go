package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"openhackathon/backend/internal/model"
	"openhackathon/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock HackathonRepository ──

type mockHackathonRepo struct {
	hackathons map[string]*model.Hackathon
	criteria   map[string][]model.ScoringCriterion // hackathonID → 按 sort_order
}

func newMockHackathonRepo() *mockHackathonRepo {
	return &mockHackathonRepo{
		hackathons: make(map[string]*model.Hackathon),
		criteria:   make(map[string][]model.ScoringCriterion),
	}
}

func (m *mockHackathonRepo) Create(_ context.Context, h *model.Hackathon) error {
	if h.HackathonID == "" {
		h.HackathonID = "hack-" + h.Title
	}
	m.hackathons[h.HackathonID] = h
	return nil
}

func (m *mockHackathonRepo) GetByID(_ context.Context, id string) (*model.Hackathon, error) {
	h, ok := m.hackathons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// 与真实实现一致：GetByID 携带预加载的评分标准
	cp := *h
	cp.Criteria = m.criteria[id]
	return &cp, nil
}

func (m *mockHackathonRepo) List(_ context.Context, status string) ([]model.Hackathon, error) {
	var result []model.Hackathon
	for _, h := range m.hackathons {
		if status != "" && h.Status != status {
			continue
		}
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].HackathonID < result[j].HackathonID })
	return result, nil
}

func (m *mockHackathonRepo) Update(_ context.Context, h *model.Hackathon) error {
	m.hackathons[h.HackathonID] = h
	return nil
}

func (m *mockHackathonRepo) Delete(_ context.Context, id string) error {
	delete(m.hackathons, id)
	delete(m.criteria, id)
	return nil
}

func (m *mockHackathonRepo) ListCriteria(_ context.Context, hackathonID string) ([]model.ScoringCriterion, error) {
	return m.criteria[hackathonID], nil
}

func (m *mockHackathonRepo) ReplaceCriteria(_ context.Context, hackathonID string, criteria []model.ScoringCriterion) error {
	for i := range criteria {
		if criteria[i].CriterionID == "" {
			criteria[i].CriterionID = fmt.Sprintf("crit-%s-%d", hackathonID, i)
		}
		criteria[i].HackathonID = hackathonID
	}
	m.criteria[hackathonID] = criteria
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *model.Session) error {
	if s.SessionID == "" {
		s.SessionID = "sess-" + s.Name
	}
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByHackathon(_ context.Context, hackathonID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.HackathonID == hackathonID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionID < result[j].SessionID })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, s *model.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// ── Mock ProjectRepository ──
//
// 切片存储保持插入顺序，模拟真实实现的 created_at 升序（平分决胜依赖该次序）

type mockProjectRepo struct {
	projects []*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{}
}

func (m *mockProjectRepo) Create(_ context.Context, p *model.Project) error {
	if p.ProjectID == "" {
		p.ProjectID = "proj-" + p.Name
	}
	m.projects = append(m.projects, p)
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	for _, p := range m.projects {
		if p.ProjectID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListByHackathon(_ context.Context, hackathonID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.HackathonID == hackathonID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListBySession(_ context.Context, sessionID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.SessionID == sessionID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, p *model.Project) error {
	for i, existing := range m.projects {
		if existing.ProjectID == p.ProjectID {
			m.projects[i] = p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	for i, p := range m.projects {
		if p.ProjectID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment
	projects    *mockProjectRepo // ListByHackathon 需要项目归属信息
	users       *mockUserRepo    // ListByHackathon 预加载评委信息
	seq         int
}

func newMockAssignmentRepo(projects *mockProjectRepo, users *mockUserRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{projects: projects, users: users}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if a.AssignmentID == "" {
		m.seq++
		a.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.AssignmentID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByProjectAndJudge(_ context.Context, projectID, judgeID string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.ProjectID == projectID && a.JudgeID == judgeID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByFilter(_ context.Context, filter repository.AssignmentFilter) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if filter.SessionID != "" && a.SessionID != filter.SessionID {
			continue
		}
		if filter.ProjectID != "" && a.ProjectID != filter.ProjectID {
			continue
		}
		if filter.JudgeID != "" && a.JudgeID != filter.JudgeID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByHackathon(_ context.Context, hackathonID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		p, err := m.projects.GetByID(context.Background(), a.ProjectID)
		if err != nil {
			continue
		}
		if p.HackathonID == hackathonID {
			cp := *a
			// 与真实实现一致：ListByHackathon 预加载 Judge
			if u, err := m.users.GetByID(context.Background(), a.JudgeID); err == nil {
				cp.Judge = u
			}
			result = append(result, cp)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	for i, existing := range m.assignments {
		if existing.AssignmentID == a.AssignmentID {
			m.assignments[i] = a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.assignments {
		if a.AssignmentID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock ScoreRepository ──

type mockScoreRepo struct {
	scores map[string][]model.Score // assignmentID → 明细
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{scores: make(map[string][]model.Score)}
}

func (m *mockScoreRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.Score, error) {
	return m.scores[assignmentID], nil
}

func (m *mockScoreRepo) ReplaceForAssignment(_ context.Context, assignmentID string, scores []model.Score) error {
	for i := range scores {
		scores[i].AssignmentID = assignmentID
	}
	m.scores[assignmentID] = scores
	return nil
}

// ── Mock LeaderboardRepository ──

type mockLeaderboardRepo struct {
	boards   map[string]*model.Leaderboard // hackathonID →
	projects *mockProjectRepo              // 条目预加载项目信息
}

func newMockLeaderboardRepo(projects *mockProjectRepo) *mockLeaderboardRepo {
	return &mockLeaderboardRepo{
		boards:   make(map[string]*model.Leaderboard),
		projects: projects,
	}
}

func (m *mockLeaderboardRepo) GetByHackathon(_ context.Context, hackathonID string) (*model.Leaderboard, error) {
	board, ok := m.boards[hackathonID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *board
	cp.Entries = make([]model.LeaderboardEntry, len(board.Entries))
	copy(cp.Entries, board.Entries)
	sort.Slice(cp.Entries, func(i, j int) bool { return cp.Entries[i].Rank < cp.Entries[j].Rank })
	for i := range cp.Entries {
		if p, err := m.projects.GetByID(context.Background(), cp.Entries[i].ProjectID); err == nil {
			cp.Entries[i].Project = p
		}
	}
	return &cp, nil
}

func (m *mockLeaderboardRepo) Save(_ context.Context, hackathonID string, published bool, entries []model.LeaderboardEntry) error {
	board, ok := m.boards[hackathonID]
	if !ok {
		board = &model.Leaderboard{
			LeaderboardID: "lb-" + hackathonID,
			HackathonID:   hackathonID,
		}
		m.boards[hackathonID] = board
	}
	board.Published = published
	for i := range entries {
		entries[i].LeaderboardID = board.LeaderboardID
	}
	board.Entries = entries
	return nil
}

// ── 测试夹具 ──

// newTestRepository 返回全 mock 的 Repository 聚合；db 为 nil，
// 事务辅助方法在该场景下退化为直通
func newTestRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		user:      newMockUserRepo(),
		hackathon: newMockHackathonRepo(),
		session:   newMockSessionRepo(),
		project:   newMockProjectRepo(),
		score:     newMockScoreRepo(),
	}
	m.assignment = newMockAssignmentRepo(m.project, m.user)
	m.leaderboard = newMockLeaderboardRepo(m.project)

	repo := &repository.Repository{
		User:        m.user,
		Hackathon:   m.hackathon,
		Session:     m.session,
		Project:     m.project,
		Assignment:  m.assignment,
		Score:       m.score,
		Leaderboard: m.leaderboard,
	}
	return repo, m
}

type mocks struct {
	user        *mockUserRepo
	hackathon   *mockHackathonRepo
	session     *mockSessionRepo
	project     *mockProjectRepo
	assignment  *mockAssignmentRepo
	score       *mockScoreRepo
	leaderboard *mockLeaderboardRepo
}
