package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
	"importbr_v1_202609/pkg/utils"
)

// ==================== 测试辅助 ====================

func setupRateTestService(t *testing.T) (*ExchangeRateService, repository.ExchangeRateRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.ExchangeRate{})

	// 清掉上一个用例留下的内存缓存
	utils.DeleteCache(rateCacheKey)
	t.Cleanup(func() { utils.DeleteCache(rateCacheKey) })

	repo := repository.NewExchangeRateRepository(db)
	return NewExchangeRateService(RateConfig{}, repo), repo
}

// ==================== 单元测试 ====================

// TestGetEffectiveRate_Fallback 无任何快照时返回兜底汇率并标注
func TestGetEffectiveRate_Fallback(t *testing.T) {
	svc, _ := setupRateTestService(t)

	snap := svc.GetEffectiveRate(context.Background())
	if snap.EffectiveRate != FallbackEffectiveRate {
		t.Errorf("effective_rate = %v, want %v", snap.EffectiveRate, FallbackEffectiveRate)
	}
	if snap.Source != model.RateSourceFallback {
		t.Errorf("source = %s, want %s", snap.Source, model.RateSourceFallback)
	}
	if snap.Notes == "" {
		t.Error("兜底快照的 notes 不应为空")
	}
}

// TestGetEffectiveRate_FromDB 有快照时读最新一条
func TestGetEffectiveRate_FromDB(t *testing.T) {
	svc, repo := setupRateTestService(t)
	ctx := context.Background()

	repo.Create(ctx, &model.ExchangeRate{OfficialRate: 1.30, ManualAdjustment: 0.95, EffectiveRate: 1.235, Source: model.RateSourceAPI})
	repo.Create(ctx, &model.ExchangeRate{OfficialRate: 1.40, ManualAdjustment: 0.90, EffectiveRate: 1.26, Source: model.RateSourceManual})

	snap := svc.GetEffectiveRate(ctx)
	if snap.EffectiveRate != 1.26 {
		t.Errorf("effective_rate = %v, want 1.26 (最新一条)", snap.EffectiveRate)
	}
	if snap.Source != model.RateSourceManual {
		t.Errorf("source = %s, want %s", snap.Source, model.RateSourceManual)
	}
}

// TestUpdateManualAdjustment 调整系数落库并沿用最新官方汇率
func TestUpdateManualAdjustment(t *testing.T) {
	svc, repo := setupRateTestService(t)
	ctx := context.Background()

	repo.Create(ctx, &model.ExchangeRate{OfficialRate: 1.40, ManualAdjustment: 0.95, EffectiveRate: 1.33, Source: model.RateSourceAPI})

	snap, err := svc.UpdateManualAdjustment(ctx, 0.90, "促销期间下调")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if snap.OfficialRate != 1.40 {
		t.Errorf("official_rate = %v, want 1.40 (沿用)", snap.OfficialRate)
	}
	if snap.EffectiveRate != 1.40*0.90 {
		t.Errorf("effective_rate = %v, want %v", snap.EffectiveRate, 1.40*0.90)
	}

	// 缓存已失效，再读应得到新快照
	latest := svc.GetEffectiveRate(ctx)
	if latest.ManualAdjustment != 0.90 {
		t.Errorf("manual_adjustment = %v, want 0.90", latest.ManualAdjustment)
	}
}

// TestUpdateManualAdjustment_Range 调整系数限定在 0.80-1.00
func TestUpdateManualAdjustment_Range(t *testing.T) {
	svc, _ := setupRateTestService(t)
	ctx := context.Background()

	for _, adj := range []float64{0.79, 1.01, 0, -1} {
		_, err := svc.UpdateManualAdjustment(ctx, adj, "")
		calcErr, ok := err.(*CalcError)
		if !ok {
			t.Fatalf("adj=%v 错误类型 = %T, want *CalcError", adj, err)
		}
		if calcErr.Field != "manual_adjustment" {
			t.Errorf("adj=%v field = %s, want manual_adjustment", adj, calcErr.Field)
		}
	}

	// 边界值合法
	for _, adj := range []float64{0.80, 1.00} {
		if _, err := svc.UpdateManualAdjustment(ctx, adj, ""); err != nil {
			t.Errorf("adj=%v 应合法, err = %v", adj, err)
		}
	}
}

// TestGetEffectiveRate_ColdStartFetchesQuote 库内无快照时实时抓取牌价并落库
func TestGetEffectiveRate_ColdStartFetchesQuote(t *testing.T) {
	_, repo := setupRateTestService(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"BRLCNY":{"bid":"1.40","create_date":"2026-09-01 10:00:00"}}`))
	}))
	defer srv.Close()

	svc := NewExchangeRateService(RateConfig{QuoteURL: srv.URL}, repo)

	snap := svc.GetEffectiveRate(ctx)
	if snap.OfficialRate != 1.40 {
		t.Errorf("official_rate = %v, want 1.40 (实时牌价)", snap.OfficialRate)
	}
	if snap.EffectiveRate != 1.40*DefaultManualAdjustment {
		t.Errorf("effective_rate = %v, want %v", snap.EffectiveRate, 1.40*DefaultManualAdjustment)
	}
	if snap.Source != model.RateSourceAPI {
		t.Errorf("source = %s, want %s", snap.Source, model.RateSourceAPI)
	}

	// 抓到的牌价已落库
	latest, err := repo.GetLatest(ctx)
	if err != nil || latest == nil {
		t.Fatalf("抓取后库内应有快照, latest=%v err=%v", latest, err)
	}
	if latest.OfficialRate != 1.40 {
		t.Errorf("落库 official_rate = %v, want 1.40", latest.OfficialRate)
	}
}

// TestGetEffectiveRate_QuoteUnreachable 牌价接口不可达时降级到兜底汇率
func TestGetEffectiveRate_QuoteUnreachable(t *testing.T) {
	_, repo := setupRateTestService(t)

	// 先开后关，拿到一个必然拒绝连接的地址
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := NewExchangeRateService(RateConfig{QuoteURL: srv.URL}, repo)

	snap := svc.GetEffectiveRate(context.Background())
	if snap.EffectiveRate != FallbackEffectiveRate {
		t.Errorf("effective_rate = %v, want %v", snap.EffectiveRate, FallbackEffectiveRate)
	}
	if snap.Source != model.RateSourceFallback {
		t.Errorf("source = %s, want %s", snap.Source, model.RateSourceFallback)
	}
}

// TestRefreshOfficialRate_NoURL 未配置牌价地址时直接报错
func TestRefreshOfficialRate_NoURL(t *testing.T) {
	svc, _ := setupRateTestService(t)

	if _, err := svc.RefreshOfficialRate(context.Background()); err == nil {
		t.Error("err = nil, want 未配置错误")
	}
}

// TestHistory 历史按时间倒序
func TestHistory(t *testing.T) {
	svc, repo := setupRateTestService(t)
	ctx := context.Background()

	repo.Create(ctx, &model.ExchangeRate{OfficialRate: 1.30, EffectiveRate: 1.235, Source: model.RateSourceAPI})
	repo.Create(ctx, &model.ExchangeRate{OfficialRate: 1.35, EffectiveRate: 1.2825, Source: model.RateSourceAPI})

	resp, err := svc.History(ctx, 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.List[0].OfficialRate != 1.35 {
		t.Errorf("第一条 official_rate = %v, want 1.35", resp.List[0].OfficialRate)
	}
}
