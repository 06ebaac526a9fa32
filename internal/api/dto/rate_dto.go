package dto

import "time"

// ==================== 汇率维护 ====================

// UpdateAdjustmentReq 调整系数更新请求
type UpdateAdjustmentReq struct {
	ManualAdjustment float64 `json:"manual_adjustment"` // 0.80 - 1.00
	Notes            string  `json:"notes"`
}

// ExchangeRateResp 汇率快照响应
type ExchangeRateResp struct {
	ID               int64     `json:"id,omitempty"`
	OfficialRate     float64   `json:"official_rate"`
	ManualAdjustment float64   `json:"manual_adjustment"`
	EffectiveRate    float64   `json:"effective_rate"`
	Source           string    `json:"source"`
	Notes            string    `json:"notes,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ExchangeRateHistoryResp 汇率历史响应
type ExchangeRateHistoryResp struct {
	Total int64              `json:"total"`
	List  []ExchangeRateResp `json:"list"`
}
