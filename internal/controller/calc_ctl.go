package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/service"
)

// CalcController 费用计算控制器
type CalcController struct {
	calcSvc    *service.CalcService
	freightSvc *service.FreightService
	importSvc  *service.ImportTaxService
}

// NewCalcController 创建费用计算控制器
func NewCalcController(
	calcSvc *service.CalcService,
	freightSvc *service.FreightService,
	importSvc *service.ImportTaxService,
) *CalcController {
	return &CalcController{
		calcSvc:    calcSvc,
		freightSvc: freightSvc,
		importSvc:  importSvc,
	}
}

// ==================== 计算接口 ====================

// Estimate 专线运费试算
// @Summary 专线运费试算
// @Description 按阶梯线路计算落地成本，含体积重、保价、服务费和人民币/雷亚尔双币种拆分
// @Tags Calc (费用计算)
// @Accept json
// @Produce json
// @Param req body dto.EstimateReq true "试算请求"
// @Success 200 {object} dto.SuccessResp "试算结果"
// @Failure 400 {object} dto.ErrorResp "校验失败或未知线路"
// @Failure 500 {object} dto.ErrorResp "内部错误"
// @Router /api/v1/calc/estimate [post]
func (c *CalcController) Estimate(ctx *gin.Context) {
	var req dto.EstimateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, service.ErrTypeValidation, "", "请求体格式错误")
		return
	}

	result, err := c.calcSvc.Calculate(ctx.Request.Context(), &req)
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, result)
}

// CalculateFreight 路线运费计算
// @Summary 路线运费计算
// @Description 按邮政/货代路线表计算运费，超首重按增量块向上取整计费
// @Tags Calc (费用计算)
// @Accept json
// @Produce json
// @Param req body dto.FreightCalcReq true "计算请求"
// @Success 200 {object} dto.SuccessResp "计算结果"
// @Failure 400 {object} dto.ErrorResp "校验失败或未知路线"
// @Failure 500 {object} dto.ErrorResp "内部错误"
// @Router /api/v1/calc/freight [post]
func (c *CalcController) CalculateFreight(ctx *gin.Context) {
	var req dto.FreightCalcReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, service.ErrTypeValidation, "", "请求体格式错误")
		return
	}

	result, err := c.freightSvc.CalculateFreight(ctx.Request.Context(), &req)
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, result)
}

// CalculateImportCost 进口税费计算
// @Summary 进口税费计算
// @Description 在 CIF 等价基数上叠加 IOF、进口税与 ICMS（含税基数倒算）
// @Tags Calc (费用计算)
// @Accept json
// @Produce json
// @Param req body dto.ImportCostReq true "计算请求"
// @Success 200 {object} dto.SuccessResp "计算结果"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Failure 500 {object} dto.ErrorResp "内部错误"
// @Router /api/v1/calc/import-cost [post]
func (c *CalcController) CalculateImportCost(ctx *gin.Context) {
	var req dto.ImportCostReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, service.ErrTypeValidation, "", "请求体格式错误")
		return
	}

	result, err := c.importSvc.CalculateImportCost(&req)
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, result)
}

// ==================== 线路查询 ====================

// GetShippingLines 线路列表
// @Summary 线路列表
// @Description 返回全部可选线路（阶梯线路 + 路线表），前端选线用
// @Tags Calc (费用计算)
// @Produce json
// @Success 200 {object} dto.SuccessResp "线路列表"
// @Router /api/v1/shipping-lines [get]
func (c *CalcController) GetShippingLines(ctx *gin.Context) {
	slabs := service.AllSlabLines()
	routes := service.AllRouteLines()

	resp := dto.ShippingLineListResp{
		SlabLines:  make([]dto.SlabLineResp, 0, len(slabs)),
		RouteLines: make([]dto.RouteLineResp, 0, len(routes)),
	}
	for _, cfg := range slabs {
		resp.SlabLines = append(resp.SlabLines, dto.SlabLineResp{
			Code:              cfg.Code,
			Label:             cfg.Label,
			FirstWeightUSD:    cfg.FirstWeightUSD,
			AddWeightUSD:      cfg.AddWeightUSD,
			MaxWeightGrams:    cfg.MaxWeightGrams,
			MaxDimensionCM:    cfg.MaxDimensionCM,
			MaxDimensionSumCM: cfg.MaxDimensionSumCM,
			MaxInsurableCNY:   cfg.MaxInsurableCNY,
			RestrictedTags:    cfg.RestrictedTags,
			DeliveryDaysMin:   cfg.DeliveryDaysMin,
			DeliveryDaysMax:   cfg.DeliveryDaysMax,
		})
	}
	for _, cfg := range routes {
		resp.RouteLines = append(resp.RouteLines, dto.RouteLineResp{
			Code:            cfg.Code,
			Label:           cfg.Label,
			FirstKgCNY:      cfg.FirstKgCNY,
			AddPriceCNY:     cfg.AddPriceCNY,
			IncrementKg:     cfg.IncrementKg,
			Type:            string(cfg.Type),
			MinWeightKg:     cfg.MinWeightKg,
			MaxWeightKg:     cfg.MaxWeightKg,
			DeliveryDaysMin: cfg.DeliveryDaysMin,
			DeliveryDaysMax: cfg.DeliveryDaysMax,
		})
	}

	respondOK(ctx, resp)
}
