package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"importbr_v1_202609/internal/model"
)

// ==================== ExchangeRate 接口定义 ====================

// ExchangeRateRepository 汇率快照仓储接口
type ExchangeRateRepository interface {
	Create(ctx context.Context, rate *model.ExchangeRate) error
	// GetLatest 获取最新快照，无数据时返回 (nil, nil)
	GetLatest(ctx context.Context) (*model.ExchangeRate, error)
	List(ctx context.Context, limit int) ([]model.ExchangeRate, error)
}

// ==================== ExchangeRate 实现 ====================

type exchangeRateRepo struct {
	db *gorm.DB
}

// NewExchangeRateRepository 创建汇率快照仓储
func NewExchangeRateRepository(db *gorm.DB) ExchangeRateRepository {
	return &exchangeRateRepo{db: db}
}

func (r *exchangeRateRepo) Create(ctx context.Context, rate *model.ExchangeRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *exchangeRateRepo) GetLatest(ctx context.Context) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	err := r.db.WithContext(ctx).Order("id DESC").First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *exchangeRateRepo) List(ctx context.Context, limit int) ([]model.ExchangeRate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var list []model.ExchangeRate
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
