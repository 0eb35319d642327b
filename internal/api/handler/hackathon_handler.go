package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// HackathonHandler 黑客松模块 HTTP 处理器
type HackathonHandler struct {
	hackathonSvc service.HackathonService
}

// NewHackathonHandler 创建 HackathonHandler
func NewHackathonHandler(hackathonSvc service.HackathonService) *HackathonHandler {
	return &HackathonHandler{hackathonSvc: hackathonSvc}
}

// ListHackathons 获取黑客松列表（可按状态过滤）
// GET /api/v1/hackathons
func (h *HackathonHandler) ListHackathons(c *gin.Context) {
	status := c.Query("status")

	hackathons, err := h.hackathonSvc.List(c.Request.Context(), status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": hackathons})
}

// GetHackathon 获取黑客松详情
// GET /api/v1/hackathons/:id
func (h *HackathonHandler) GetHackathon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	hackathon, err := h.hackathonSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.OK(c, hackathon)
}

// CreateHackathon 创建黑客松
// POST /api/v1/hackathons
func (h *HackathonHandler) CreateHackathon(c *gin.Context) {
	var req dto.CreateHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	hackathon, err := h.hackathonSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.Created(c, hackathon)
}

// UpdateHackathon 更新黑客松
// PUT /api/v1/hackathons/:id
func (h *HackathonHandler) UpdateHackathon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.UpdateHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	hackathon, err := h.hackathonSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.OK(c, hackathon)
}

// DeleteHackathon 删除黑客松（级联删除赛段、项目、分配与评分）
// DELETE /api/v1/hackathons/:id
func (h *HackathonHandler) DeleteHackathon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	if err := h.hackathonSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateCriteria 整体替换评分标准（总分必须为100）
// PUT /api/v1/hackathons/:id/criteria
func (h *HackathonHandler) UpdateCriteria(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.UpdateCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	hackathon, err := h.hackathonSvc.UpdateCriteria(c.Request.Context(), id, &req)
	if err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.OK(c, hackathon)
}

// UpdateSubmissionFields 整体替换报名表单字段定义
// PUT /api/v1/hackathons/:id/submission-fields
func (h *HackathonHandler) UpdateSubmissionFields(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	var req dto.UpdateSubmissionFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	hackathon, err := h.hackathonSvc.UpdateSubmissionFields(c.Request.Context(), id, &req)
	if err != nil {
		h.handleHackathonError(c, err)
		return
	}

	response.OK(c, hackathon)
}

// handleHackathonError 统一处理黑客松模块业务错误
func (h *HackathonHandler) handleHackathonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		response.NotFound(c, 12001, "黑客松不存在")
	case errors.Is(err, service.ErrHackathonDateInvalid):
		response.BadRequest(c, 12002, "黑客松日期无效")
	case errors.Is(err, service.ErrRubricSumInvalid):
		// 带上当前总分与差额，组织者无需自己算
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrRubricNegativeMax):
		response.BadRequest(c, 12004, "评分标准分值不能为负")
	case errors.Is(err, service.ErrFieldIDDuplicate):
		response.BadRequest(c, 12005, "表单字段ID重复")
	case errors.Is(err, service.ErrFieldTypeInvalid):
		response.BadRequest(c, 12006, "表单字段类型无效")
	default:
		response.InternalError(c)
	}
}
