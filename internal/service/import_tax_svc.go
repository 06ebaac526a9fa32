package service

import (
	"importbr_v1_202609/internal/api/dto"
)

// ==================== 税率常量 ====================

const (
	// IOFRate 金融操作税，固定费率
	IOFRate = 0.0038

	// ICMSRate 州流转税，按含税基数倒算（gross-up）
	ICMSRate = 0.17

	// ImportTaxRate 超过 50 美元申报价值适用的进口税率
	ImportTaxRate = 0.60

	// SimplifiedExemptionUSD 简易征收免税申报价值上限（美元）
	SimplifiedExemptionUSD = 50
)

// ==================== 服务定义 ====================

// ImportTaxService 进口税费计算服务
// 纯计算，无 I/O；在 CIF 等价基数上叠加 IOF、进口税和 ICMS
type ImportTaxService struct{}

// NewImportTaxService 创建进口税费服务
func NewImportTaxService() *ImportTaxService {
	return &ImportTaxService{}
}

// ==================== 计算入口 ====================

// CalculateImportCost 进口税费计算
// 税层顺序：CIF → IOF → 进口税 → ICMS（含税基数倒算）→ 合计
func (s *ImportTaxService) CalculateImportCost(req *dto.ImportCostReq) (*dto.ImportCostResult, error) {
	if err := validateImportCostReq(req); err != nil {
		return nil, err
	}

	// CIF 等价基数 =（商品 + 运费）×（1 + 服务费率）
	cif := (req.ProductBRL + req.ShippingBRL) * (1 + req.ServiceFeePercent/100)

	iof := cif * IOFRate

	// 进口税率按申报价值分档：
	//   简易征收且 ≤ 50 美元 → 免税
	//   > 50 美元            → 60%
	//   其余（含非简易征收的低申报价值）→ 0%
	// 最后一档与公开政策不符，保留现行口径待产品侧确认
	importTaxRate := 0.0
	switch {
	case req.SimplifiedRegime && req.DeclaredValueUSD <= SimplifiedExemptionUSD:
		importTaxRate = 0
	case req.DeclaredValueUSD > SimplifiedExemptionUSD:
		importTaxRate = ImportTaxRate
	}

	importTax := cif * importTaxRate

	// ICMS 的税基包含 ICMS 本身，需按 base/(1-rate)×rate 倒算
	icmsBase := cif + iof + importTax
	icms := icmsBase / (1 - ICMSRate) * ICMSRate

	total := cif + iof + importTax + icms

	return &dto.ImportCostResult{
		CIF:           round2(cif),
		IOF:           round2(iof),
		ImportTaxRate: importTaxRate,
		ImportTax:     round2(importTax),
		ICMSBase:      round2(icmsBase),
		ICMS:          round2(icms),
		Total:         round2(total),
	}, nil
}

// ==================== 请求校验 ====================

func validateImportCostReq(req *dto.ImportCostReq) *CalcError {
	if req.ProductBRL <= 0 {
		return newValidationError("product_brl", "商品价格必须大于 0")
	}
	if req.ShippingBRL < 0 {
		return newValidationError("shipping_brl", "运费不能为负数")
	}
	if req.ServiceFeePercent < 0 {
		return newValidationError("service_fee_percent", "服务费率不能为负数")
	}
	if req.DeclaredValueUSD < 0 {
		return newValidationError("declared_value_usd", "申报价值不能为负数")
	}
	return nil
}
