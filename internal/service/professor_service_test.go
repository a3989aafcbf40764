package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
)

func TestGetDetail_RoundsAverage(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.professor.stats[1] = repository.ProfessorStats{
		ID: 1, Name: "Alice Smith", Department: "Computer Science", AverageRating: 4.666, NumberOfRatings: 3,
	}
	mocks.professor.offerings[1] = []repository.ProfessorOffering{
		{ProfessorCourseSemesterID: 7, CourseSemesterID: 5, CourseID: 2, CourseName: "Data Structures", SemesterID: 3, SemesterName: "Fall 2024"},
	}

	detail, err := NewProfessorService(repo, zap.NewNop()).GetDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDetail 失败: %v", err)
	}
	if detail.AverageRating != 4.7 {
		t.Errorf("期望 averageRating=4.7，实际=%v", detail.AverageRating)
	}
	if len(detail.CourseSemesters) != 1 || detail.CourseSemesters[0].CourseSemesterID != 5 {
		t.Errorf("开课列表不符: %+v", detail.CourseSemesters)
	}
}

func TestGetDetail_NotFound(t *testing.T) {
	repo, _ := newMockRepository()
	_, err := NewProfessorService(repo, zap.NewNop()).GetDetail(context.Background(), 42)
	if !errors.Is(err, ErrProfessorNotFound) {
		t.Errorf("期望 ErrProfessorNotFound，实际=%v", err)
	}
}

func TestRatingDistribution_ZeroFilled(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewProfessorService(repo, zap.NewNop())

	empty, err := svc.RatingDistribution(context.Background(), 1)
	if err != nil {
		t.Fatalf("RatingDistribution 失败: %v", err)
	}
	if *empty != (dto.RatingDistributionResponse{}) {
		t.Errorf("无评分时应全为 0，实际=%+v", empty)
	}

	mocks.rating.dist = map[int]int64{5: 2, 1: 1}
	dist, _ := svc.RatingDistribution(context.Background(), 1)
	if dist.Awesome != 2 || dist.Awful != 1 || dist.Good != 0 {
		t.Errorf("分布映射错误: %+v", dist)
	}
}

func TestTagDistribution_Filter(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.tag.tags[1] = model.Tag{ID: 1, Name: "Caring"}
	mocks.tag.professorTags[[2]uint{1, 1}] = 3
	svc := NewProfessorService(repo, zap.NewNop())

	all, err := svc.TagDistribution(context.Background(), 1, dto.OfferingFilter{})
	if err != nil {
		t.Fatalf("TagDistribution 失败: %v", err)
	}
	if len(all) != 1 || all[0].Tag != "Caring" || all[0].Count != 3 {
		t.Errorf("汇总标签不符: %+v", all)
	}

	// 只给出 course_id 时仍走汇总
	partial, _ := svc.TagDistribution(context.Background(), 1, dto.OfferingFilter{CourseID: 2})
	if len(partial) != 1 || partial[0].Tag != "Caring" {
		t.Errorf("不完整过滤应返回汇总，实际=%+v", partial)
	}

	filtered, _ := svc.TagDistribution(context.Background(), 1, dto.OfferingFilter{CourseID: 2, SemesterID: 3})
	if len(filtered) != 1 || filtered[0].Tag != "offering" {
		t.Errorf("完整过滤应实时统计，实际=%+v", filtered)
	}
}

func TestRecordView(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.professor.profs[1] = &model.Professor{ID: 1, Name: "Alice"}
	svc := NewProfessorService(repo, zap.NewNop())

	for i := 0; i < 2; i++ {
		if err := svc.RecordView(context.Background(), 1); err != nil {
			t.Fatalf("RecordView 失败: %v", err)
		}
	}
	if mocks.professor.views[1] != 2 {
		t.Errorf("期望浏览量=2，实际=%d", mocks.professor.views[1])
	}
	if err := svc.RecordView(context.Background(), 9); !errors.Is(err, ErrProfessorNotFound) {
		t.Errorf("期望 ErrProfessorNotFound，实际=%v", err)
	}
}

func TestProfessorCreate_RequiresDepartment(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewProfessorService(repo, zap.NewNop())

	if _, err := svc.Create(context.Background(), &dto.SaveProfessorRequest{Name: "Bob", DepartmentID: 3}); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际=%v", err)
	}

	_ = mocks.department.Create(context.Background(), &model.Department{Name: "Math"})
	id, err := svc.Create(context.Background(), &dto.SaveProfessorRequest{Name: " Bob ", DepartmentID: 1})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	p := mocks.professor.profs[id]
	if p.Name != "Bob" || p.University != model.DefaultUniversity {
		t.Errorf("教授字段不符: %+v", p)
	}

	mocks.professor.assignments[id] = 1
	if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrProfessorInUse) {
		t.Errorf("有授课分配时期望 ErrProfessorInUse，实际=%v", err)
	}
}
