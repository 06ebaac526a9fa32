package dto

import "time"

// ==================== 通用响应 ====================

// ErrorInfo 错误详情
type ErrorInfo struct {
	Type    string `json:"type"`            // validation_error / configuration_error / server_error
	Field   string `json:"field,omitempty"` // 出错字段，仅校验错误有值
	Message string `json:"message"`
}

// SuccessResp 成功响应包裹
type SuccessResp struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
}

// ErrorResp 失败响应包裹
type ErrorResp struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

// ==================== 阶梯线路试算 ====================

// EstimateReq 专线运费试算请求
// 数值字段不加 binding required，缺失/零值由服务层逐项校验并返回字段级错误
type EstimateReq struct {
	ProductPriceCNY  float64 `json:"product_price_cny"` // 商品价格（人民币）
	WeightGrams      float64 `json:"weight_grams"`      // 实际重量（克）
	LengthCM         float64 `json:"length_cm"`
	WidthCM          float64 `json:"width_cm"`
	HeightCM         float64 `json:"height_cm"`
	ShippingLine     string  `json:"shipping_line"`    // 线路编码
	ServiceFeeRate   float64 `json:"service_fee_rate"` // 服务费率（小数，0.01-0.06）
	IncludeInsurance bool    `json:"include_insurance"`
}

// WeightAnalysis 重量分析
type WeightAnalysis struct {
	ActualWeightGrams     float64 `json:"actual_weight_grams"`
	VolumetricWeightGrams float64 `json:"volumetric_weight_grams"`
	WeightUsedGrams       float64 `json:"weight_used_grams"`
	WasVolumetric         bool    `json:"was_volumetric"` // 体积重是否为决定值
}

// CostBreakdown 费用拆分，单币种
type CostBreakdown struct {
	Product    float64 `json:"product"`
	Freight    float64 `json:"freight"`
	Insurance  float64 `json:"insurance"`
	ServiceFee float64 `json:"service_fee"`
	Total      float64 `json:"total"`
}

// ExchangeRateInfo 本次计算使用的汇率快照
type ExchangeRateInfo struct {
	OfficialRate     float64   `json:"official_rate"`
	ManualAdjustment float64   `json:"manual_adjustment"`
	EffectiveRate    float64   `json:"effective_rate"`
	UpdatedAt        time.Time `json:"updated_at"`
	Notes            string    `json:"notes,omitempty"` // 兜底汇率时标注 fallback
}

// FreightDetails 运费明细
type FreightDetails struct {
	FreightUSD      float64 `json:"freight_usd"` // 线路报价（美元）
	LineCode        string  `json:"line_code"`
	LineLabel       string  `json:"line_label"`
	DeliveryDaysMin int     `json:"delivery_days_min"`
	DeliveryDaysMax int     `json:"delivery_days_max"`
	MaxInsurableCNY float64 `json:"max_insurable_cny"`
}

// EstimateResult 专线试算结果
type EstimateResult struct {
	TraceID        string           `json:"trace_id"`
	WeightAnalysis WeightAnalysis   `json:"weight_analysis"`
	CostsCNY       CostBreakdown    `json:"costs_cny"`
	CostsBRL       CostBreakdown    `json:"costs_brl"`
	ExchangeRates  ExchangeRateInfo `json:"exchange_rates"`
	FreightDetails FreightDetails   `json:"freight_details"`
}

// ==================== 路线表运费计算 ====================

// FreightCalcReq 路线运费计算请求
type FreightCalcReq struct {
	Route            string  `json:"route"` // 路线编码
	ProductPriceCNY  float64 `json:"product_price_cny"`
	WeightKg         float64 `json:"weight_kg"` // 实际重量（千克）
	LengthCM         float64 `json:"length_cm"`
	WidthCM          float64 `json:"width_cm"`
	HeightCM         float64 `json:"height_cm"`
	VIPLevel         int     `json:"vip_level"` // 0-5
	IncludeInsurance bool    `json:"include_insurance"`
}

// FreightCalcResult 路线运费计算结果
type FreightCalcResult struct {
	TraceID    string `json:"trace_id"`
	RouteCode  string `json:"route_code"`
	RouteLabel string `json:"route_label"`
	RouteType  string `json:"route_type"` // volumetric / pure_weight

	ActualWeightKg     float64 `json:"actual_weight_kg"`
	VolumetricWeightKg float64 `json:"volumetric_weight_kg"`
	ChargeWeightKg     float64 `json:"charge_weight_kg"`
	WasVolumetric      bool    `json:"was_volumetric"`

	CostsCNY      CostBreakdown    `json:"costs_cny"`
	CostsBRL      CostBreakdown    `json:"costs_brl"`
	ExchangeRates ExchangeRateInfo `json:"exchange_rates"`

	VIPLevel          int     `json:"vip_level"`
	ServiceFeePercent float64 `json:"service_fee_percent"`
	DeliveryDaysMin   int     `json:"delivery_days_min"`
	DeliveryDaysMax   int     `json:"delivery_days_max"`
}

// ==================== 进口税费计算 ====================

// ImportCostReq 进口税费计算请求
type ImportCostReq struct {
	ProductBRL        float64 `json:"product_brl"`         // 商品价格（雷亚尔）
	ShippingBRL       float64 `json:"shipping_brl"`        // 运费（雷亚尔）
	ServiceFeePercent float64 `json:"service_fee_percent"` // 服务费百分比
	DeclaredValueUSD  float64 `json:"declared_value_usd"`  // 申报价值（美元）
	SimplifiedRegime  bool    `json:"simplified_regime"`   // 是否简易征收
}

// ImportCostResult 进口税费计算结果
// 全部字段为雷亚尔，已四舍五入到 2 位小数
type ImportCostResult struct {
	CIF           float64 `json:"cif"`
	IOF           float64 `json:"iof"`
	ImportTaxRate float64 `json:"import_tax_rate"` // 小数，0 或 0.60
	ImportTax     float64 `json:"import_tax"`
	ICMSBase      float64 `json:"icms_base"`
	ICMS          float64 `json:"icms"`
	Total         float64 `json:"total"`
}

// ==================== 线路列表 ====================

// SlabLineResp 阶梯线路信息
type SlabLineResp struct {
	Code              string   `json:"code"`
	Label             string   `json:"label"`
	FirstWeightUSD    float64  `json:"first_weight_usd"`
	AddWeightUSD      float64  `json:"add_weight_usd"`
	MaxWeightGrams    float64  `json:"max_weight_grams"`
	MaxDimensionCM    float64  `json:"max_dimension_cm"`
	MaxDimensionSumCM float64  `json:"max_dimension_sum_cm"`
	MaxInsurableCNY   float64  `json:"max_insurable_cny"`
	RestrictedTags    []string `json:"restricted_tags"`
	DeliveryDaysMin   int      `json:"delivery_days_min"`
	DeliveryDaysMax   int      `json:"delivery_days_max"`
}

// RouteLineResp 路线表线路信息
type RouteLineResp struct {
	Code            string  `json:"code"`
	Label           string  `json:"label"`
	FirstKgCNY      float64 `json:"first_kg_cny"`
	AddPriceCNY     float64 `json:"add_price_cny"`
	IncrementKg     float64 `json:"increment_kg"`
	Type            string  `json:"type"`
	MinWeightKg     float64 `json:"min_weight_kg"`
	MaxWeightKg     float64 `json:"max_weight_kg"`
	DeliveryDaysMin int     `json:"delivery_days_min"`
	DeliveryDaysMax int     `json:"delivery_days_max"`
}

// ShippingLineListResp 线路列表响应
type ShippingLineListResp struct {
	SlabLines  []SlabLineResp  `json:"slab_lines"`
	RouteLines []RouteLineResp `json:"route_lines"`
}
