package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects 获取黑客松下的全部项目
// GET /api/v1/hackathons/:id/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	projects, err := h.projectSvc.ListByHackathon(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, gin.H{"list": projects})
}

// GetProject 获取项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	project, err := h.projectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// CreateProject 报名参赛：在黑客松下创建项目（draft 状态）
// POST /api/v1/hackathons/:id/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), hackathonID, &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, project)
}

// UpdateProject 更新项目（仅 draft 状态、仅提交者本人）
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// SubmitProject 提交项目：draft → submitted
// POST /api/v1/projects/:id/submit
func (h *ProjectHandler) SubmitProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Submit(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// DeleteProject 删除项目（提交者本人或管理员/主办方）
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), id, callerID, callerRole); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProjectError 统一处理项目模块业务错误
func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 14001, "项目不存在")
	case errors.Is(err, service.ErrHackathonNotFound):
		response.NotFound(c, 12001, "黑客松不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrProjectNotOwner):
		response.Forbidden(c, 14002, "只有提交者本人可以操作该项目")
	case errors.Is(err, service.ErrProjectAlreadySubmitted):
		response.Conflict(c, 14003, "项目已提交，不可修改")
	case errors.Is(err, service.ErrProjectSessionMismatch):
		response.BadRequest(c, 14004, "赛段不属于该黑客松")
	case errors.Is(err, service.ErrProjectFormInvalid):
		response.BadRequest(c, 14005, "报名表单数据不符合字段定义")
	default:
		response.InternalError(c)
	}
}
