package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
	"importbr_v1_202609/internal/service"
)

// ==================== 测试辅助 ====================

func setupRateRouter(t *testing.T) (*gin.Engine, repository.ExchangeRateRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.ExchangeRate{})

	repo := repository.NewExchangeRateRepository(db)
	rateSvc := service.NewExchangeRateService(service.RateConfig{}, repo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	ctl := NewRateController(rateSvc)
	rate := r.Group("/api/v1/exchange-rate")
	rate.GET("", ctl.GetCurrent)
	rate.PUT("/adjustment", ctl.UpdateAdjustment)
	rate.GET("/history", ctl.History)

	return r, repo
}

// ==================== 单元测试 ====================

func TestUpdateAdjustment_Endpoint(t *testing.T) {
	r, _ := setupRateRouter(t)

	body, _ := json.Marshal(dto.UpdateAdjustmentReq{ManualAdjustment: 0.85, Notes: "活动期下调"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/exchange-rate/adjustment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                 `json:"success"`
		Result  dto.ExchangeRateResp `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Result.ManualAdjustment != 0.85 {
		t.Errorf("manual_adjustment = %v, want 0.85", resp.Result.ManualAdjustment)
	}
	if resp.Result.Source != model.RateSourceManual {
		t.Errorf("source = %s, want %s", resp.Result.Source, model.RateSourceManual)
	}
}

func TestUpdateAdjustment_OutOfRange(t *testing.T) {
	r, _ := setupRateRouter(t)

	body, _ := json.Marshal(dto.UpdateAdjustmentReq{ManualAdjustment: 0.5})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/exchange-rate/adjustment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp dto.ErrorResp
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Field != "manual_adjustment" {
		t.Errorf("error.field = %s, want manual_adjustment", resp.Error.Field)
	}
}

func TestRateHistory_Endpoint(t *testing.T) {
	r, repo := setupRateRouter(t)

	repo.Create(context.Background(), &model.ExchangeRate{OfficialRate: 1.30, EffectiveRate: 1.235, Source: model.RateSourceAPI})
	repo.Create(context.Background(), &model.ExchangeRate{OfficialRate: 1.33, EffectiveRate: 1.2635, Source: model.RateSourceAPI})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exchange-rate/history?limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool                        `json:"success"`
		Result  dto.ExchangeRateHistoryResp `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Result.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Result.Total)
	}
}
