package service

// 运费线路静态配置表
// 部署期固定，运行期只读，无需加锁

// ==================== 线路类型 ====================

// LineKind 线路配置族
type LineKind string

const (
	LineKindSlab  LineKind = "slab"  // 阶梯计价（专线快递，按 100g 连续计费）
	LineKindRoute LineKind = "route" // 路线表计价（邮政/货代，超首重按增量块向上取整）
)

// RouteType 路线计抛类型
type RouteType string

const (
	RouteTypeVolumetric RouteType = "volumetric"  // 计抛：体积重可参与计费
	RouteTypePureWeight RouteType = "pure_weight" // 纯实重：始终按实际重量计费
)

// ==================== 配置结构 ====================

// SlabLineConfig 阶梯计价线路配置
// 首重 100g，续重按每 100g 连续计费（不足 100g 按比例，不向上取整）
type SlabLineConfig struct {
	Code              string   // 线路编码
	Label             string   // 展示名称
	FirstWeightUSD    float64  // 首重（100g）价格，美元
	AddWeightUSD      float64  // 续重每 100g 价格，美元
	MaxWeightGrams    float64  // 最大计费重量（克）
	MaxDimensionCM    float64  // 单边长度上限（厘米）
	MaxDimensionSumCM float64  // 三边之和上限（厘米）
	VolumetricDivisor float64  // 体积重除数
	MaxInsurableCNY   float64  // 最高可保价值（人民币）
	RestrictedTags    []string // 禁运属性标签
	DeliveryDaysMin   int      // 时效下限（天）
	DeliveryDaysMax   int      // 时效上限（天）
}

// RouteLineConfig 路线表计价配置
// 首重 1kg，超出部分按 IncrementKg 为块向上取整计费
type RouteLineConfig struct {
	Code              string
	Label             string
	FirstKgCNY        float64   // 首重（1kg）价格，人民币
	AddPriceCNY       float64   // 每增量块价格，人民币
	IncrementKg       float64   // 续重增量块大小（千克）
	Type              RouteType // 计抛类型
	VolumetricDivisor float64   // 体积重除数（cm³ → kg）
	MinWeightKg       float64   // 最小收货重量，0 表示不限
	MaxWeightKg       float64   // 最大收货重量，0 表示不限
	DeliveryDaysMin   int
	DeliveryDaysMax   int
}

// Line 线路查找结果，按配置族二选一
type Line struct {
	Kind  LineKind
	Slab  *SlabLineConfig
	Route *RouteLineConfig
}

// ==================== 配置数据 ====================

// slabLines 专线快递线路
var slabLines = map[string]*SlabLineConfig{
	"JD-0-3kg": {
		Code:              "JD-0-3kg",
		Label:             "京东专线 0-3kg",
		FirstWeightUSD:    7.94,
		AddWeightUSD:      1.73,
		MaxWeightGrams:    3000,
		MaxDimensionCM:    60,
		MaxDimensionSumCM: 90,
		VolumetricDivisor: 8000,
		MaxInsurableCNY:   5000,
		RestrictedTags:    []string{"battery", "liquid", "powder"},
		DeliveryDaysMin:   10,
		DeliveryDaysMax:   15,
	},
	"JD-3-10kg": {
		Code:              "JD-3-10kg",
		Label:             "京东专线 3-10kg",
		FirstWeightUSD:    8.94,
		AddWeightUSD:      1.54,
		MaxWeightGrams:    10000,
		MaxDimensionCM:    80,
		MaxDimensionSumCM: 120,
		VolumetricDivisor: 8000,
		MaxInsurableCNY:   8000,
		RestrictedTags:    []string{"battery", "liquid", "powder"},
		DeliveryDaysMin:   12,
		DeliveryDaysMax:   18,
	},
	"SL-0-2kg": {
		Code:              "SL-0-2kg",
		Label:             "速邮小包 0-2kg",
		FirstWeightUSD:    6.80,
		AddWeightUSD:      1.92,
		MaxWeightGrams:    2000,
		MaxDimensionCM:    45,
		MaxDimensionSumCM: 80,
		VolumetricDivisor: 8000,
		MaxInsurableCNY:   3000,
		RestrictedTags:    []string{"liquid"},
		DeliveryDaysMin:   15,
		DeliveryDaysMax:   25,
	},
}

// routeLines 邮政/货代路线
var routeLines = map[string]*RouteLineConfig{
	"BR-AIR-STD": {
		Code:              "BR-AIR-STD",
		Label:             "巴西空运标准",
		FirstKgCNY:        88,
		AddPriceCNY:       35,
		IncrementKg:       0.5,
		Type:              RouteTypeVolumetric,
		VolumetricDivisor: 6000,
		MinWeightKg:       0.1,
		MaxWeightKg:       30,
		DeliveryDaysMin:   18,
		DeliveryDaysMax:   30,
	},
	"BR-SEA-ECO": {
		Code:              "BR-SEA-ECO",
		Label:             "巴西海运经济",
		FirstKgCNY:        45,
		AddPriceCNY:       16,
		IncrementKg:       1.0,
		Type:              RouteTypePureWeight,
		VolumetricDivisor: 6000,
		MinWeightKg:       1,
		MaxWeightKg:       100,
		DeliveryDaysMin:   45,
		DeliveryDaysMax:   70,
	},
	"BR-AIR-SENS": {
		Code:              "BR-AIR-SENS",
		Label:             "巴西空运敏感货",
		FirstKgCNY:        105,
		AddPriceCNY:       42,
		IncrementKg:       0.5,
		Type:              RouteTypeVolumetric,
		VolumetricDivisor: 8000,
		MinWeightKg:       0.1,
		MaxWeightKg:       20,
		DeliveryDaysMin:   20,
		DeliveryDaysMax:   35,
	},
}

// vipFeePercents VIP 等级 → 服务费百分比
// 等级越高费率越低
var vipFeePercents = map[int]float64{
	0: 5.0,
	1: 4.5,
	2: 4.0,
	3: 3.5,
	4: 3.0,
	5: 2.5,
}

// validSlabFeeRates 阶梯线路允许的服务费率（小数）
var validSlabFeeRates = []float64{0.01, 0.02, 0.03, 0.04, 0.05, 0.06}

// ==================== 查找 ====================

// LookupLine 按编码查找线路，两个配置族共用同一编码空间
func LookupLine(code string) (*Line, bool) {
	if cfg, ok := slabLines[code]; ok {
		return &Line{Kind: LineKindSlab, Slab: cfg}, true
	}
	if cfg, ok := routeLines[code]; ok {
		return &Line{Kind: LineKindRoute, Route: cfg}, true
	}
	return nil, false
}

// LookupVIPFeePercent 查找 VIP 等级对应的服务费百分比
func LookupVIPFeePercent(level int) (float64, bool) {
	pct, ok := vipFeePercents[level]
	return pct, ok
}

// AllSlabLines 返回全部阶梯线路（前端选线用）
func AllSlabLines() []*SlabLineConfig {
	list := make([]*SlabLineConfig, 0, len(slabLines))
	for _, cfg := range slabLines {
		list = append(list, cfg)
	}
	return list
}

// AllRouteLines 返回全部路线表线路
func AllRouteLines() []*RouteLineConfig {
	list := make([]*RouteLineConfig, 0, len(routeLines))
	for _, cfg := range routeLines {
		list = append(list, cfg)
	}
	return list
}

// isValidSlabFeeRate 服务费率是否在允许集合内
func isValidSlabFeeRate(rate float64) bool {
	for _, r := range validSlabFeeRates {
		if rate == r {
			return true
		}
	}
	return false
}
