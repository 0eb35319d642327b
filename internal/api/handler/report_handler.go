package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"openhackathon/backend/internal/service"
	"openhackathon/backend/pkg/response"
)

// ReportHandler 报表与导出模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetMatrix 获取评委×项目评分矩阵
// GET /api/v1/hackathons/:id/report/matrix
func (h *ReportHandler) GetMatrix(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	matrix, err := h.reportSvc.BuildMatrix(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, matrix)
}

// ExportCSV 导出评分矩阵为 CSV
// GET /api/v1/hackathons/:id/report/export/csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	buf, filename, err := h.reportSvc.ExportCSV(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	h.sendAttachment(c, buf.Bytes(), filename, "text/csv; charset=utf-8")
}

// ExportExcel 导出评分矩阵为 Excel
// GET /api/v1/hackathons/:id/report/export/excel
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	buf, filename, err := h.reportSvc.ExportExcel(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	h.sendAttachment(c, buf.Bytes(), filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// ExportSchedule 导出赛段日程为 iCalendar (.ics)
// GET /api/v1/hackathons/:id/report/export/schedule
func (h *ReportHandler) ExportSchedule(c *gin.Context) {
	hackathonID := c.Param("id")
	if hackathonID == "" {
		response.BadRequest(c, 10001, "黑客松ID不能为空")
		return
	}

	buf, filename, err := h.reportSvc.ExportSchedule(c.Request.Context(), hackathonID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	h.sendAttachment(c, buf.Bytes(), filename, "text/calendar; charset=utf-8")
}

// sendAttachment 设置下载响应头并写出文件内容
func (h *ReportHandler) sendAttachment(c *gin.Context, data []byte, filename, mime string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", mime)
	c.Data(http.StatusOK, mime, data)
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		response.NotFound(c, 12001, "黑客松不存在")
	case errors.Is(err, service.ErrReportNoSessions):
		response.NotFound(c, 18001, "该黑客松暂无可导出的赛段日程")
	case errors.Is(err, service.ErrReportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
