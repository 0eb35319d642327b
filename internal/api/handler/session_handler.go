package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// SessionHandler 赛段模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 获取黑客松下的全部赛段
// GET /api/v1/hackathons/:id/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	sessions, err := h.sessionSvc.ListByHackathon(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession 获取赛段详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛段ID不能为空")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateSession 在黑客松下创建赛段
// POST /api/v1/hackathons/:id/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), hackathonID, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新赛段
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛段ID不能为空")
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession 删除赛段
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛段ID不能为空")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSessionError 统一处理赛段模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrHackathonNotFound):
		response.NotFound(c, 12001, "黑客松不存在")
	case errors.Is(err, service.ErrSessionTimeInvalid):
		response.BadRequest(c, 13002, "赛段时间区间无效")
	default:
		response.InternalError(c)
	}
}
