package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestProjectService() (ProjectService, *mocks) {
	repo, m := newTestRepository()
	svc := NewProjectService(repo, zap.NewNop())
	return svc, m
}

// seedProjectFixture 准备：黑客松（含报名表单定义）+ 赛段 + 参赛者
func seedProjectFixture(m *mocks) {
	ctx := context.Background()
	m.hackathon.Create(ctx, &model.Hackathon{
		HackathonID: "hack-1",
		Title:       "春季黑客松",
		SubmissionFields: model.FieldDescriptors{
			{ID: "intro", Label: "项目简介", Type: "textarea", Required: true},
			{ID: "repo", Label: "仓库地址", Type: "url"},
		},
	})
	m.session.Create(ctx, &model.Session{SessionID: "sess-1", HackathonID: "hack-1", Name: "初赛"})
	m.user.Create(ctx, &model.User{UserID: "part-1", Name: "李参赛", Email: "part1@test.com", Role: model.RoleParticipant})
}

// ── Create 测试 ──

func TestProjectService_Create_Success(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	result, err := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "智能排班助手",
		FormData:  map[string]string{"intro": "一个排班工具"},
	}, "part-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.ProjectStatusDraft {
		t.Errorf("新项目期望draft，实际=%s", result.Status)
	}
}

func TestProjectService_Create_UnknownFormField(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	_, err := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "野字段项目",
		FormData:  map[string]string{"ghost": "未定义字段"},
	}, "part-1")
	if !errors.Is(err, ErrProjectFormInvalid) {
		t.Errorf("期望 ErrProjectFormInvalid，实际: %v", err)
	}
}

func TestProjectService_Create_SessionMismatch(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)
	m.hackathon.Create(context.Background(), &model.Hackathon{HackathonID: "hack-2", Title: "另一场"})
	m.session.Create(context.Background(), &model.Session{SessionID: "sess-x", HackathonID: "hack-2", Name: "外部赛段"})

	_, err := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-x",
		Name:      "错位项目",
	}, "part-1")
	if !errors.Is(err, ErrProjectSessionMismatch) {
		t.Errorf("期望 ErrProjectSessionMismatch，实际: %v", err)
	}
}

// ── Submit 测试 ──

func TestProjectService_Submit_Success(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "完整项目",
		FormData:  map[string]string{"intro": "已填写简介"},
	}, "part-1")

	result, err := svc.Submit(context.Background(), created.ID, "part-1")
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if result.Status != model.ProjectStatusSubmitted {
		t.Errorf("提交后期望submitted，实际=%s", result.Status)
	}
}

func TestProjectService_Submit_MissingRequiredField(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	// 草稿允许留空，提交时必填字段校验生效
	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "缺简介项目",
	}, "part-1")

	_, err := svc.Submit(context.Background(), created.ID, "part-1")
	if !errors.Is(err, ErrProjectFormInvalid) {
		t.Errorf("期望 ErrProjectFormInvalid，实际: %v", err)
	}
}

func TestProjectService_Submit_Twice(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "重复提交项目",
		FormData:  map[string]string{"intro": "简介"},
	}, "part-1")
	svc.Submit(context.Background(), created.ID, "part-1")

	if _, err := svc.Submit(context.Background(), created.ID, "part-1"); !errors.Is(err, ErrProjectAlreadySubmitted) {
		t.Errorf("期望 ErrProjectAlreadySubmitted，实际: %v", err)
	}
}

func TestProjectService_Submit_NotOwner(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "他人项目",
		FormData:  map[string]string{"intro": "简介"},
	}, "part-1")

	if _, err := svc.Submit(context.Background(), created.ID, "part-2"); !errors.Is(err, ErrProjectNotOwner) {
		t.Errorf("期望 ErrProjectNotOwner，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestProjectService_Update_AfterSubmitRejected(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "锁定项目",
		FormData:  map[string]string{"intro": "简介"},
	}, "part-1")
	svc.Submit(context.Background(), created.ID, "part-1")

	name := "改名尝试"
	_, err := svc.Update(context.Background(), created.ID, &dto.UpdateProjectRequest{Name: &name}, "part-1")
	if !errors.Is(err, ErrProjectAlreadySubmitted) {
		t.Errorf("提交后更新应被拒绝，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestProjectService_Delete_ByAdmin(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "待清理项目",
	}, "part-1")

	// 管理员可删除他人项目
	if err := svc.Delete(context.Background(), created.ID, "admin-1", model.RoleAdmin); err != nil {
		t.Fatalf("管理员 Delete 应成功: %v", err)
	}
}

func TestProjectService_Delete_StrangerRejected(t *testing.T) {
	svc, m := setupTestProjectService()
	seedProjectFixture(m)

	created, _ := svc.Create(context.Background(), "hack-1", &dto.CreateProjectRequest{
		SessionID: "sess-1",
		Name:      "受保护项目",
	}, "part-1")

	if err := svc.Delete(context.Background(), created.ID, "part-2", model.RoleParticipant); !errors.Is(err, ErrProjectNotOwner) {
		t.Errorf("期望 ErrProjectNotOwner，实际: %v", err)
	}
}
