package model

import "gorm.io/datatypes"

// 计算类型常量
const (
	CalcKindEstimate = "estimate" // 阶梯线路试算
	CalcKindFreight  = "freight"  // 路线表运费计算
	CalcKindImport   = "import"   // 进口税费计算
)

// CalcLog 费用计算日志
// 写入为尽力而为，失败不影响计算结果返回
type CalcLog struct {
	BaseModel

	TraceID  string `gorm:"size:36;index;comment:计算追踪ID"`
	Kind     string `gorm:"size:32;index;comment:计算类型"`
	LineCode string `gorm:"size:50;index;comment:线路编码"`

	// 关键结果摘要
	WeightUsedGrams float64 `gorm:"type:decimal(12,2);default:0;comment:计费重量(克)"`
	WasVolumetric   bool    `gorm:"default:false;comment:是否按体积重计费"`
	TotalCNY        float64 `gorm:"type:decimal(12,2);default:0;comment:合计(人民币)"`
	TotalBRL        float64 `gorm:"type:decimal(12,2);default:0;comment:合计(雷亚尔)"`

	// 原始请求体，排查口径问题用
	RequestPayload datatypes.JSON `gorm:"comment:请求参数"`
}

func (CalcLog) TableName() string {
	return "calc_logs"
}
