package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
	"importbr_v1_202609/pkg/utils"
)

// ==================== 汇率常量 ====================

// 兜底汇率：数据库无快照且牌价接口不可用时使用
// effectiveRate = 1.32 × 0.95 = 1.254（1 BRL 可兑换的 CNY 数量）
const (
	FallbackOfficialRate    = 1.32
	FallbackAdjustment      = 0.95
	FallbackEffectiveRate   = 1.254
	DefaultManualAdjustment = 0.95
)

// 调整系数允许区间
const (
	MinManualAdjustment = 0.80
	MaxManualAdjustment = 1.00
)

const rateCacheKey = "exchange_rate:latest"

// ==================== 快照与接口 ====================

// RateSnapshot 计算引擎消费的汇率快照
type RateSnapshot struct {
	OfficialRate     float64
	ManualAdjustment float64
	EffectiveRate    float64
	UpdatedAt        time.Time
	Source           string
	Notes            string
}

// RateProvider 汇率提供方
// 计算引擎只依赖该接口，便于测试时注入固定汇率
type RateProvider interface {
	// GetEffectiveRate 永不失败：无可用数据时返回兜底快照
	GetEffectiveRate(ctx context.Context) *RateSnapshot
}

// ==================== 服务实现 ====================

// RateConfig 汇率服务配置
type RateConfig struct {
	QuoteURL     string        // 官方牌价接口地址（BRL-CNY），可为空
	FetchTimeout time.Duration // 抓取超时，默认 3 秒
	CacheTTL     time.Duration // 内存缓存时长，默认 5 分钟
}

// ExchangeRateService 汇率服务
// 读取顺序：内存缓存 → 数据库最新快照 → 兜底常量
type ExchangeRateService struct {
	cfg    RateConfig
	repo   repository.ExchangeRateRepository
	client *resty.Client
}

// NewExchangeRateService 创建汇率服务
func NewExchangeRateService(cfg RateConfig, repo repository.ExchangeRateRepository) *ExchangeRateService {
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 3 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ExchangeRateService{
		cfg:    cfg,
		repo:   repo,
		client: resty.New().SetTimeout(cfg.FetchTimeout),
	}
}

// GetEffectiveRate 获取当前生效汇率
// 读取顺序：内存缓存 → 数据库最新快照 → 牌价接口实时抓取 → 兜底常量
// 任一数据源失败都降级到下一级，绝不向调用方返回错误
func (s *ExchangeRateService) GetEffectiveRate(ctx context.Context) *RateSnapshot {
	if cached, ok := utils.GetCache(rateCacheKey); ok {
		if snap, ok := cached.(*RateSnapshot); ok {
			return snap
		}
	}

	if s.repo != nil {
		latest, err := s.repo.GetLatest(ctx)
		if err != nil {
			log.Printf("[ExchangeRate] 读取汇率快照失败: %v", err)
		} else if latest != nil {
			snap := snapshotFromModel(latest)
			utils.SetCache(rateCacheKey, snap, s.cfg.CacheTTL)
			return snap
		}
	}

	// 冷启动且库内无快照时尝试实时抓取一次
	if s.cfg.QuoteURL != "" {
		if snap, err := s.fetchAndStore(ctx); err != nil {
			log.Printf("[ExchangeRate] 实时抓取牌价失败，使用兜底汇率: %v", err)
		} else {
			utils.SetCache(rateCacheKey, snap, s.cfg.CacheTTL)
			return snap
		}
	}

	return fallbackSnapshot()
}

// UpdateManualAdjustment 更新人工调整系数，追加一条新快照
func (s *ExchangeRateService) UpdateManualAdjustment(ctx context.Context, adjustment float64, notes string) (*RateSnapshot, error) {
	if adjustment < MinManualAdjustment || adjustment > MaxManualAdjustment {
		return nil, newValidationError("manual_adjustment",
			fmt.Sprintf("调整系数必须在 %.2f 与 %.2f 之间", MinManualAdjustment, MaxManualAdjustment))
	}

	// 沿用最新的官方汇率
	official := FallbackOfficialRate
	if latest, err := s.repo.GetLatest(ctx); err == nil && latest != nil {
		official = latest.OfficialRate
	}

	rate := &model.ExchangeRate{
		OfficialRate:     official,
		ManualAdjustment: adjustment,
		EffectiveRate:    official * adjustment,
		Source:           model.RateSourceManual,
		Notes:            notes,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("保存汇率快照失败: %w", err)
	}

	utils.DeleteCache(rateCacheKey)
	return snapshotFromModel(rate), nil
}

// RefreshOfficialRate 抓取官方牌价并落库
// 抓取失败只返回错误给调用方（定时任务记日志），不影响计算链路
func (s *ExchangeRateService) RefreshOfficialRate(ctx context.Context) (*RateSnapshot, error) {
	if s.cfg.QuoteURL == "" {
		return nil, fmt.Errorf("未配置牌价接口地址")
	}

	snap, err := s.fetchAndStore(ctx)
	if err != nil {
		return nil, err
	}

	utils.DeleteCache(rateCacheKey)
	return snap, nil
}

// History 汇率历史
func (s *ExchangeRateService) History(ctx context.Context, limit int) (*dto.ExchangeRateHistoryResp, error) {
	list, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("查询汇率历史失败: %w", err)
	}

	respList := make([]dto.ExchangeRateResp, 0, len(list))
	for _, rate := range list {
		respList = append(respList, dto.ExchangeRateResp{
			ID:               rate.ID,
			OfficialRate:     rate.OfficialRate,
			ManualAdjustment: rate.ManualAdjustment,
			EffectiveRate:    rate.EffectiveRate,
			Source:           rate.Source,
			Notes:            rate.Notes,
			UpdatedAt:        rate.UpdatedAt,
		})
	}

	return &dto.ExchangeRateHistoryResp{
		Total: int64(len(respList)),
		List:  respList,
	}, nil
}

// ==================== 内部方法 ====================

// quoteResp 牌价接口响应（BRL-CNY 货币对）
type quoteResp struct {
	BRLCNY struct {
		Bid        string `json:"bid"`
		CreateDate string `json:"create_date"`
	} `json:"BRLCNY"`
}

// fetchOfficialRate 请求牌价接口，短超时
func (s *ExchangeRateService) fetchOfficialRate(ctx context.Context) (float64, error) {
	var quote quoteResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&quote).
		Get(s.cfg.QuoteURL)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("牌价接口返回 %d", resp.StatusCode())
	}

	official, err := strconv.ParseFloat(quote.BRLCNY.Bid, 64)
	if err != nil {
		return 0, fmt.Errorf("牌价解析失败: %w", err)
	}
	if official <= 0 {
		return 0, fmt.Errorf("牌价非法: %v", official)
	}
	return official, nil
}

// fetchAndStore 抓取官方牌价并落库，沿用库内最新的调整系数
func (s *ExchangeRateService) fetchAndStore(ctx context.Context) (*RateSnapshot, error) {
	official, err := s.fetchOfficialRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("抓取官方牌价失败: %w", err)
	}

	adjustment := DefaultManualAdjustment
	if s.repo != nil {
		if latest, err := s.repo.GetLatest(ctx); err == nil && latest != nil {
			adjustment = latest.ManualAdjustment
		}
	}

	rate := &model.ExchangeRate{
		OfficialRate:     official,
		ManualAdjustment: adjustment,
		EffectiveRate:    official * adjustment,
		Source:           model.RateSourceAPI,
		Notes:            "官方牌价自动刷新",
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, rate); err != nil {
			return nil, fmt.Errorf("保存汇率快照失败: %w", err)
		}
	}

	snap := snapshotFromModel(rate)
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now()
	}
	return snap, nil
}

func snapshotFromModel(rate *model.ExchangeRate) *RateSnapshot {
	return &RateSnapshot{
		OfficialRate:     rate.OfficialRate,
		ManualAdjustment: rate.ManualAdjustment,
		EffectiveRate:    rate.EffectiveRate,
		UpdatedAt:        rate.UpdatedAt,
		Source:           rate.Source,
		Notes:            rate.Notes,
	}
}

func fallbackSnapshot() *RateSnapshot {
	return &RateSnapshot{
		OfficialRate:     FallbackOfficialRate,
		ManualAdjustment: FallbackAdjustment,
		EffectiveRate:    FallbackEffectiveRate,
		UpdatedAt:        time.Now(),
		Source:           model.RateSourceFallback,
		Notes:            "fallback: 无可用汇率数据，使用默认值",
	}
}
