package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
)

// ==================== 计费常量 ====================

const (
	// USDToCNYRate 专线运费报价为美元，合并前按固定汇率折算为人民币
	USDToCNYRate = 7.2

	// MaxProductPriceCNY 商品价格上限，校验为严格大于才拒绝
	MaxProductPriceCNY = 999999

	// 保价：费率 3%，绝对封顶 90 元
	InsuranceRate   = 0.03
	InsuranceCapCNY = 90

	// FirstSlabGrams 首重克数
	FirstSlabGrams = 100
)

// ==================== 服务定义 ====================

// CalcService 阶梯线路费用试算服务
type CalcService struct {
	rates   RateProvider
	logRepo repository.CalcLogRepository // 可为 nil，日志为尽力而为
}

// NewCalcService 创建试算服务
func NewCalcService(rates RateProvider, logRepo repository.CalcLogRepository) *CalcService {
	return &CalcService{
		rates:   rates,
		logRepo: logRepo,
	}
}

// ==================== 试算入口 ====================

// Calculate 专线运费试算
// 校验失败立即返回，不做任何计算；校验通过后全链路使用未舍入中间值，
// 仅在填充结果时对每个字段独立四舍五入到 2 位小数
func (s *CalcService) Calculate(ctx context.Context, req *dto.EstimateReq) (*dto.EstimateResult, error) {
	line, ok := LookupLine(req.ShippingLine)
	if !ok || line.Kind != LineKindSlab {
		return nil, newConfigurationError(fmt.Sprintf("未知的线路编码: %s", req.ShippingLine))
	}
	cfg := line.Slab

	if err := validateEstimateReq(req, cfg); err != nil {
		return nil, err
	}

	// 体积重（克）= 长×宽×高×1000 / 除数
	volumetricGrams := req.LengthCM * req.WidthCM * req.HeightCM * 1000 / cfg.VolumetricDivisor

	// 体积重单独超限也要拒绝：实重通过了第 2 步校验，但体积重在此刻才可知
	if volumetricGrams > cfg.MaxWeightGrams {
		return nil, newValidationError("volumetric_weight",
			fmt.Sprintf("体积重 %.0f 克超出线路 %s 的上限 %.0f 克", volumetricGrams, cfg.Label, cfg.MaxWeightGrams))
	}

	// 计费重取实重与体积重的较大者
	wasVolumetric := volumetricGrams > req.WeightGrams
	weightUsed := req.WeightGrams
	if wasVolumetric {
		weightUsed = volumetricGrams
	}

	// 运费（美元）：首重内固定价，超出部分按每 100g 连续计费，不足 100g 按比例
	freightUSD := cfg.FirstWeightUSD
	if weightUsed > FirstSlabGrams {
		freightUSD += (weightUsed - FirstSlabGrams) / FirstSlabGrams * cfg.AddWeightUSD
	}
	freightCNY := freightUSD * USDToCNYRate

	// 保价（可选）：3% 封顶 90 元
	insuranceCNY := 0.0
	if req.IncludeInsurance {
		insuranceCNY = math.Min(InsuranceRate*(req.ProductPriceCNY+freightCNY), InsuranceCapCNY)
	}

	// 服务费 =（商品价 + 运费）× 费率
	serviceFeeCNY := (req.ProductPriceCNY + freightCNY) * req.ServiceFeeRate

	totalCNY := req.ProductPriceCNY + freightCNY + insuranceCNY + serviceFeeCNY

	// CNY → BRL：effectiveRate 定义为 1 BRL 可兑换的 CNY 数量，除法即换算
	snap := s.rates.GetEffectiveRate(ctx)

	result := &dto.EstimateResult{
		TraceID: uuid.NewString(),
		WeightAnalysis: dto.WeightAnalysis{
			ActualWeightGrams:     round2(req.WeightGrams),
			VolumetricWeightGrams: round2(volumetricGrams),
			WeightUsedGrams:       round2(weightUsed),
			WasVolumetric:         wasVolumetric,
		},
		CostsCNY: dto.CostBreakdown{
			Product:    round2(req.ProductPriceCNY),
			Freight:    round2(freightCNY),
			Insurance:  round2(insuranceCNY),
			ServiceFee: round2(serviceFeeCNY),
			Total:      round2(totalCNY),
		},
		CostsBRL: dto.CostBreakdown{
			Product:    round2(req.ProductPriceCNY / snap.EffectiveRate),
			Freight:    round2(freightCNY / snap.EffectiveRate),
			Insurance:  round2(insuranceCNY / snap.EffectiveRate),
			ServiceFee: round2(serviceFeeCNY / snap.EffectiveRate),
			Total:      round2(totalCNY / snap.EffectiveRate),
		},
		ExchangeRates: dto.ExchangeRateInfo{
			OfficialRate:     snap.OfficialRate,
			ManualAdjustment: snap.ManualAdjustment,
			EffectiveRate:    snap.EffectiveRate,
			UpdatedAt:        snap.UpdatedAt,
			Notes:            snap.Notes,
		},
		FreightDetails: dto.FreightDetails{
			FreightUSD:      round2(freightUSD),
			LineCode:        cfg.Code,
			LineLabel:       cfg.Label,
			DeliveryDaysMin: cfg.DeliveryDaysMin,
			DeliveryDaysMax: cfg.DeliveryDaysMax,
			MaxInsurableCNY: cfg.MaxInsurableCNY,
		},
	}

	writeCalcLog(ctx, s.logRepo, result.TraceID, model.CalcKindEstimate, cfg.Code, req,
		result.WeightAnalysis.WeightUsedGrams, wasVolumetric, result.CostsCNY.Total, result.CostsBRL.Total)

	return result, nil
}

// ==================== 请求校验 ====================

// validateEstimateReq 固定顺序逐项校验，返回首个失败项
func validateEstimateReq(req *dto.EstimateReq, cfg *SlabLineConfig) *CalcError {
	// 1. 商品价格
	if req.ProductPriceCNY <= 0 {
		return newValidationError("product_price_cny", "商品价格必须大于 0")
	}
	if req.ProductPriceCNY > MaxProductPriceCNY {
		return newValidationError("product_price_cny",
			fmt.Sprintf("商品价格超出上限 %d", MaxProductPriceCNY))
	}

	// 2. 实际重量
	if req.WeightGrams < 1 {
		return newValidationError("weight_grams", "重量必须不低于 1 克")
	}
	if req.WeightGrams > cfg.MaxWeightGrams {
		return newValidationError("weight_grams",
			fmt.Sprintf("重量超出线路 %s 的上限 %.0f 克", cfg.Label, cfg.MaxWeightGrams))
	}

	// 3. 三边尺寸
	dims := []struct {
		field string
		label string
		value float64
	}{
		{"length_cm", "长度", req.LengthCM},
		{"width_cm", "宽度", req.WidthCM},
		{"height_cm", "高度", req.HeightCM},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return newValidationError(d.field, fmt.Sprintf("%s必须大于 0", d.label))
		}
		if cfg.MaxDimensionCM > 0 && d.value > cfg.MaxDimensionCM {
			return newValidationError(d.field,
				fmt.Sprintf("%s超出单边上限 %.0f 厘米", d.label, cfg.MaxDimensionCM))
		}
	}

	// 4. 三边之和
	if cfg.MaxDimensionSumCM > 0 {
		sum := req.LengthCM + req.WidthCM + req.HeightCM
		if sum > cfg.MaxDimensionSumCM {
			return newValidationError("dimensions",
				fmt.Sprintf("三边之和超出上限 %.0f 厘米", cfg.MaxDimensionSumCM))
		}
	}

	// 5. 服务费率
	if !isValidSlabFeeRate(req.ServiceFeeRate) {
		return newValidationError("service_fee_rate", "服务费率必须是 1%-6% 中的整数档位")
	}

	return nil
}

// ==================== 内部方法 ====================

// writeCalcLog 落计算日志，失败只打日志
func writeCalcLog(ctx context.Context, repo repository.CalcLogRepository, traceID, kind, lineCode string,
	req interface{}, weightUsed float64, wasVolumetric bool, totalCNY, totalBRL float64) {
	if repo == nil {
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Printf("[CalcLog] 请求序列化失败: %v", err)
		payload = nil
	}

	entry := &model.CalcLog{
		TraceID:         traceID,
		Kind:            kind,
		LineCode:        lineCode,
		WeightUsedGrams: weightUsed,
		WasVolumetric:   wasVolumetric,
		TotalCNY:        totalCNY,
		TotalBRL:        totalBRL,
		RequestPayload:  payload,
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("[CalcLog] 日志写入失败: %v", err)
	}
}

// round2 四舍五入到 2 位小数，仅在填充结果时调用
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
