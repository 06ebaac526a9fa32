package repository

import (
	"context"

	"gorm.io/gorm"

	"importbr_v1_202609/internal/model"
)

// ==================== CalcLog 接口定义 ====================

// CalcLogRepository 计算日志仓储接口
type CalcLogRepository interface {
	Create(ctx context.Context, log *model.CalcLog) error
	GetByTraceID(ctx context.Context, traceID string) (*model.CalcLog, error)
	ListByLine(ctx context.Context, lineCode string, limit int) ([]model.CalcLog, error)
}

// ==================== CalcLog 实现 ====================

type calcLogRepo struct {
	db *gorm.DB
}

// NewCalcLogRepository 创建计算日志仓储
func NewCalcLogRepository(db *gorm.DB) CalcLogRepository {
	return &calcLogRepo{db: db}
}

func (r *calcLogRepo) Create(ctx context.Context, log *model.CalcLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *calcLogRepo) GetByTraceID(ctx context.Context, traceID string) (*model.CalcLog, error) {
	var log model.CalcLog
	err := r.db.WithContext(ctx).Where("trace_id = ?", traceID).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *calcLogRepo) ListByLine(ctx context.Context, lineCode string, limit int) ([]model.CalcLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var list []model.CalcLog
	err := r.db.WithContext(ctx).
		Where("line_code = ?", lineCode).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
