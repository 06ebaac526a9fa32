package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
)

// FirstWeightKg 路线首重千克数
const FirstWeightKg = 1.0

// ==================== 服务定义 ====================

// FreightService 路线表运费计算服务
// 与阶梯线路的区别：超首重部分按增量块向上取整计费（阶梯线路为连续计费），
// 服务费基数额外包含保价，且体积重只在计抛路线参与计费
type FreightService struct {
	rates   RateProvider
	logRepo repository.CalcLogRepository
}

// NewFreightService 创建路线运费服务
func NewFreightService(rates RateProvider, logRepo repository.CalcLogRepository) *FreightService {
	return &FreightService{
		rates:   rates,
		logRepo: logRepo,
	}
}

// ==================== 计算入口 ====================

// CalculateFreight 路线运费计算
func (s *FreightService) CalculateFreight(ctx context.Context, req *dto.FreightCalcReq) (*dto.FreightCalcResult, error) {
	line, ok := LookupLine(req.Route)
	if !ok || line.Kind != LineKindRoute {
		return nil, newConfigurationError(fmt.Sprintf("未知的路线编码: %s", req.Route))
	}
	cfg := line.Route

	if err := validateFreightReq(req, cfg); err != nil {
		return nil, err
	}

	// 体积重（千克）：cm³ / 除数，向上取整到整千克
	volumetricKg := math.Ceil(req.LengthCM * req.WidthCM * req.HeightCM / cfg.VolumetricDivisor)

	// 计抛路线取较大者，纯实重路线始终按实重
	chargeKg := req.WeightKg
	wasVolumetric := false
	if cfg.Type == RouteTypeVolumetric && volumetricKg > req.WeightKg {
		chargeKg = volumetricKg
		wasVolumetric = true
	}

	// 体积重把计费重量推过路线上限时同样拒绝
	if cfg.MaxWeightKg > 0 && chargeKg > cfg.MaxWeightKg {
		return nil, newValidationError("volumetric_weight",
			fmt.Sprintf("体积重 %.0f 千克超出路线 %s 的上限 %.1f 千克", volumetricKg, cfg.Label, cfg.MaxWeightKg))
	}

	// 运费：首重 1kg 固定价，超出部分按增量块向上取整计费
	freightCNY := cfg.FirstKgCNY
	if chargeKg > FirstWeightKg {
		blocks := math.Ceil((chargeKg - FirstWeightKg) / cfg.IncrementKg)
		freightCNY += blocks * cfg.AddPriceCNY
	}

	// 保价（可选）：与阶梯线路同口径，3% 封顶 90 元
	insuranceCNY := 0.0
	if req.IncludeInsurance {
		insuranceCNY = math.Min(InsuranceRate*(req.ProductPriceCNY+freightCNY), InsuranceCapCNY)
	}

	// 路线服务费基数包含保价
	feePercent, _ := LookupVIPFeePercent(req.VIPLevel)
	serviceFeeCNY := (freightCNY + insuranceCNY) * feePercent / 100

	totalCNY := req.ProductPriceCNY + freightCNY + insuranceCNY + serviceFeeCNY

	snap := s.rates.GetEffectiveRate(ctx)

	result := &dto.FreightCalcResult{
		TraceID:    uuid.NewString(),
		RouteCode:  cfg.Code,
		RouteLabel: cfg.Label,
		RouteType:  string(cfg.Type),

		ActualWeightKg:     round2(req.WeightKg),
		VolumetricWeightKg: round2(volumetricKg),
		ChargeWeightKg:     round2(chargeKg),
		WasVolumetric:      wasVolumetric,

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

		VIPLevel:          req.VIPLevel,
		ServiceFeePercent: feePercent,
		DeliveryDaysMin:   cfg.DeliveryDaysMin,
		DeliveryDaysMax:   cfg.DeliveryDaysMax,
	}

	writeCalcLog(ctx, s.logRepo, result.TraceID, model.CalcKindFreight, cfg.Code, req,
		chargeKg*1000, wasVolumetric, result.CostsCNY.Total, result.CostsBRL.Total)

	return result, nil
}

// ==================== 请求校验 ====================

// validateFreightReq 固定顺序逐项校验，返回首个失败项
func validateFreightReq(req *dto.FreightCalcReq, cfg *RouteLineConfig) *CalcError {
	// 1. 商品价格
	if req.ProductPriceCNY <= 0 {
		return newValidationError("product_price_cny", "商品价格必须大于 0")
	}
	if req.ProductPriceCNY > MaxProductPriceCNY {
		return newValidationError("product_price_cny",
			fmt.Sprintf("商品价格超出上限 %d", MaxProductPriceCNY))
	}

	// 2. 实际重量（千克）
	if req.WeightKg <= 0 {
		return newValidationError("weight_kg", "重量必须大于 0")
	}
	if cfg.MinWeightKg > 0 && req.WeightKg < cfg.MinWeightKg {
		return newValidationError("weight_kg",
			fmt.Sprintf("重量低于路线 %s 的下限 %.1f 千克", cfg.Label, cfg.MinWeightKg))
	}
	if cfg.MaxWeightKg > 0 && req.WeightKg > cfg.MaxWeightKg {
		return newValidationError("weight_kg",
			fmt.Sprintf("重量超出路线 %s 的上限 %.1f 千克", cfg.Label, cfg.MaxWeightKg))
	}

	// 3. 三边尺寸（路线表不设单边上限，只要求为正）
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
	}

	// 4. VIP 等级
	if _, ok := LookupVIPFeePercent(req.VIPLevel); !ok {
		return newValidationError("vip_level", "VIP 等级必须在 0-5 之间")
	}

	return nil
}
