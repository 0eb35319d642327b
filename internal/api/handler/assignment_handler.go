package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/repository"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// AssignmentHandler 评审分配与评分模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	scoreSvc      service.ScoreService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, scoreSvc service.ScoreService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, scoreSvc: scoreSvc}
}

// ListAssignments 查询评审分配列表（支持按赛段/项目/评委/状态过滤）
// GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	filter := repository.AssignmentFilter{
		SessionID: c.Query("session_id"),
		ProjectID: c.Query("project_id"),
		JudgeID:   c.Query("judge_id"),
		Status:    c.Query("status"),
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// ListMyAssignments 评委查看分配给自己的评审任务
// GET /api/v1/assignments/mine
func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	judgeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	filter := repository.AssignmentFilter{
		JudgeID:   judgeID,
		SessionID: c.Query("session_id"),
		Status:    c.Query("status"),
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// GetAssignment 获取分配详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}

	assignment, err := h.assignmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// CreateAssignment 建立单个 (项目, 评委) 分配
// POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// BulkAssign 为一位评委批量分配项目（已存在的组合静默跳过）
// POST /api/v1/assignments/bulk
func (h *AssignmentHandler) BulkAssign(c *gin.Context) {
	var req dto.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.BulkAssign(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// StartAssignment 评委打开评审：pending → in_progress（重复打开幂等）
// POST /api/v1/assignments/:id/start
func (h *AssignmentHandler) StartAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}

	judgeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentSvc.Start(c.Request.Context(), id, judgeID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// DeleteAssignment 删除分配及其评分记录
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitScore 评委提交全量单项评分
// POST /api/v1/assignments/:id/score
func (h *AssignmentHandler) SubmitScore(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}

	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	judgeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.scoreSvc.Submit(c.Request.Context(), id, judgeID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, detail)
}

// GetScoreDetail 查询一条分配的评分明细
// GET /api/v1/assignments/:id/score
func (h *AssignmentHandler) GetScoreDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}

	detail, err := h.scoreSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, detail)
}

// handleAssignmentError 统一处理分配与评分模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15001, "评审分配不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 14001, "项目不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11004, "用户不存在")
	case errors.Is(err, service.ErrAssignmentDuplicate):
		response.Conflict(c, 15002, "该项目与评委的分配已存在")
	case errors.Is(err, service.ErrAssignmentNotJudge):
		response.BadRequest(c, 15003, "被分配用户不是评委")
	case errors.Is(err, service.ErrAssignmentNotOwner):
		response.Forbidden(c, 15004, "只能操作分配给自己的评审任务")
	case errors.Is(err, service.ErrAssignmentStateConflict):
		response.Conflict(c, 15005, "评审状态不允许该操作")
	case errors.Is(err, service.ErrProjectSessionMismatch):
		response.BadRequest(c, 14004, "项目不属于该赛段所在黑客松")
	case errors.Is(err, service.ErrScoreAlreadyDone):
		response.Conflict(c, 16001, "评分已提交，不可重复提交")
	case errors.Is(err, service.ErrScoreRubricInvalid):
		response.BadRequest(c, 16002, "评分标准未配置或不合法")
	case errors.Is(err, service.ErrScoreCriterionMissing):
		response.BadRequest(c, 16003, "评分必须覆盖全部评分标准")
	case errors.Is(err, service.ErrScoreCriterionUnknown):
		response.BadRequest(c, 16004, "包含未知的评分标准")
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.BadRequest(c, 16005, "单项得分超出允许区间")
	default:
		response.InternalError(c)
	}
}
