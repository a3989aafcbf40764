package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// 工作表名称
const (
	SheetProfessors = "Professors"
	SheetCourses    = "Courses"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	// ExportRatings 导出教授与课程的评分汇总为 Excel
	ExportRatings(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportRatings
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Professors"：姓名 / 院系 / 平均分 / 评分数 / 浏览量
//   - Sheet "Courses"：课程 / 平均质量 / 平均难度 / 平均喜爱度 / 评分数

func (s *exportService) ExportRatings(ctx context.Context) (*bytes.Buffer, string, error) {
	profs, err := s.repo.Professor.ListStats(ctx)
	if err != nil {
		s.logger.Error("查询教授评分汇总失败", zap.Error(err))
		return nil, "", err
	}
	courses, err := s.repo.Course.ListStats(ctx)
	if err != nil {
		s.logger.Error("查询课程评分汇总失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// 默认 Sheet1 改名为 Professors
	if err := f.SetSheetName("Sheet1", SheetProfessors); err != nil {
		return nil, "", s.fail(err)
	}
	if _, err := f.NewSheet(SheetCourses); err != nil {
		return nil, "", s.fail(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.fail(err)
	}

	// Professors
	profRows := make([][]interface{}, 0, len(profs))
	for _, p := range profs {
		profRows = append(profRows, []interface{}{
			p.Name, p.Department, dto.Round1(p.AverageRating), p.NumberOfRatings, p.ViewCount,
		})
	}
	if err := writeSheet(f, SheetProfessors, headerStyle,
		[]string{"Professor", "Department", "Average Rating", "Ratings", "Views"},
		[]float64{28, 28, 16, 10, 10},
		profRows,
	); err != nil {
		return nil, "", s.fail(err)
	}

	// Courses
	courseRows := make([][]interface{}, 0, len(courses))
	for _, c := range courses {
		courseRows = append(courseRows, []interface{}{
			c.Name, dto.Round1(c.AverageQuality), dto.Round1(c.AverageDifficulty), dto.Round1(c.AverageLiking), c.NumberOfRatings,
		})
	}
	if err := writeSheet(f, SheetCourses, headerStyle,
		[]string{"Course", "Average Quality", "Average Difficulty", "Average Liking", "Ratings"},
		[]float64{32, 16, 18, 16, 10},
		courseRows,
	); err != nil {
		return nil, "", s.fail(err)
	}

	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	filename := fmt.Sprintf("profguide_ratings_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) fail(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return ErrExportGenerateFail
}

// ── 辅助函数 ──

// writeSheet 写入表头（第 1 行）与数据行，并设置列宽
func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, widths []float64, rows [][]interface{}) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
