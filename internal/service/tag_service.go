package service

import (
	"context"

	"go.uber.org/zap"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
)

// TagService 标签业务接口
type TagService interface {
	List(ctx context.Context) ([]model.Tag, error)
	// RebuildProfessorTags 由评分标签全量重建教授标签汇总
	RebuildProfessorTags(ctx context.Context) (*dto.RebuildTagsResponse, error)
}

type tagService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTagService 创建 TagService 实例
func NewTagService(repo *repository.Repository, logger *zap.Logger) TagService {
	return &tagService{repo: repo, logger: logger}
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.Tag.List(ctx)
	if err != nil {
		s.logger.Error("列出标签失败", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (s *tagService) RebuildProfessorTags(ctx context.Context) (*dto.RebuildTagsResponse, error) {
	var professors, rows int64
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		professors, rows, err = txRepo.Tag.RebuildProfessorTags(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("重建教授标签失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("教授标签重建完成", zap.Int64("professors", professors), zap.Int64("rows", rows))
	return &dto.RebuildTagsResponse{Professors: professors, Tags: rows}, nil
}
