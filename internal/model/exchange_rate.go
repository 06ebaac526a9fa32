package model

// 汇率来源常量
const (
	RateSourceManual   = "manual"   // 管理端手工调整
	RateSourceAPI      = "api"      // 官方牌价接口抓取
	RateSourceFallback = "fallback" // 无可用数据时的兜底值
)

// ExchangeRate 汇率快照（CNY → BRL）
// 每次调整/抓取追加一条，最新一条为当前生效汇率
type ExchangeRate struct {
	BaseModel

	// 汇率定义：effectiveRate = officialRate × manualAdjustment
	// officialRate 含义为 1 BRL 可兑换的 CNY 数量
	OfficialRate     float64 `gorm:"type:decimal(10,4);not null;comment:官方汇率"`
	ManualAdjustment float64 `gorm:"type:decimal(6,4);default:1;comment:人工调整系数(0.80-1.00)"`
	EffectiveRate    float64 `gorm:"type:decimal(10,4);not null;comment:生效汇率"`

	Source string `gorm:"size:32;index;comment:来源(manual/api/fallback)"`
	Notes  string `gorm:"size:255;comment:备注"`
}

func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
