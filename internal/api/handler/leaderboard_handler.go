package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// LeaderboardHandler 排行榜模块 HTTP 处理器
type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

// NewLeaderboardHandler 创建 LeaderboardHandler
func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// GetPublicLeaderboard 公开读取排行榜（未发布时返回占位响应）
// GET /api/v1/hackathons/:id/leaderboard
func (h *LeaderboardHandler) GetPublicLeaderboard(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	board, err := h.leaderboardSvc.GetPublic(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	response.OK(c, board)
}

// GetAdminLeaderboard 管理端读取：无论是否发布均返回原始条目
// GET /api/v1/hackathons/:id/leaderboard/admin
func (h *LeaderboardHandler) GetAdminLeaderboard(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	board, err := h.leaderboardSvc.GetAdmin(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	response.OK(c, board)
}

// SaveLeaderboard 保存策展条目与发布标志（同一事务生效）
// PUT /api/v1/hackathons/:id/leaderboard
func (h *LeaderboardHandler) SaveLeaderboard(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.SaveLeaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	board, err := h.leaderboardSvc.Save(c.Request.Context(), hackathonID, &req)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	response.OK(c, board)
}

// handleLeaderboardError 统一处理排行榜模块业务错误
func (h *LeaderboardHandler) handleLeaderboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		response.NotFound(c, 12001, "黑客松不存在")
	case errors.Is(err, service.ErrLeaderboardEntryInvalid):
		response.BadRequest(c, 17001, "排行榜条目引用了不属于该黑客松的项目")
	case errors.Is(err, service.ErrLeaderboardEntryDup):
		response.BadRequest(c, 17002, "排行榜条目中存在重复项目")
	default:
		response.InternalError(c)
	}
}
