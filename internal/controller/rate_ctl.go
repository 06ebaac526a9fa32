package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/service"
)

// RateController 汇率维护控制器
type RateController struct {
	rateSvc *service.ExchangeRateService
}

// NewRateController 创建汇率控制器
func NewRateController(rateSvc *service.ExchangeRateService) *RateController {
	return &RateController{rateSvc: rateSvc}
}

// GetCurrent 当前生效汇率
// @Summary 当前生效汇率
// @Description 返回当前 CNY→BRL 生效汇率快照，无数据时为兜底值
// @Tags ExchangeRate (汇率)
// @Produce json
// @Success 200 {object} dto.SuccessResp "汇率快照"
// @Router /api/v1/exchange-rate [get]
func (c *RateController) GetCurrent(ctx *gin.Context) {
	snap := c.rateSvc.GetEffectiveRate(ctx.Request.Context())
	respondOK(ctx, dto.ExchangeRateResp{
		OfficialRate:     snap.OfficialRate,
		ManualAdjustment: snap.ManualAdjustment,
		EffectiveRate:    snap.EffectiveRate,
		Source:           snap.Source,
		Notes:            snap.Notes,
		UpdatedAt:        snap.UpdatedAt,
	})
}

// UpdateAdjustment 更新人工调整系数
// @Summary 更新人工调整系数
// @Description 调整系数范围 0.80-1.00，追加一条新的汇率快照
// @Tags ExchangeRate (汇率)
// @Accept json
// @Produce json
// @Param req body dto.UpdateAdjustmentReq true "调整请求"
// @Success 200 {object} dto.SuccessResp "新的汇率快照"
// @Failure 400 {object} dto.ErrorResp "系数超出范围"
// @Router /api/v1/exchange-rate/adjustment [put]
func (c *RateController) UpdateAdjustment(ctx *gin.Context) {
	var req dto.UpdateAdjustmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, service.ErrTypeValidation, "", "请求体格式错误")
		return
	}

	snap, err := c.rateSvc.UpdateManualAdjustment(ctx.Request.Context(), req.ManualAdjustment, req.Notes)
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, dto.ExchangeRateResp{
		OfficialRate:     snap.OfficialRate,
		ManualAdjustment: snap.ManualAdjustment,
		EffectiveRate:    snap.EffectiveRate,
		Source:           snap.Source,
		Notes:            snap.Notes,
		UpdatedAt:        snap.UpdatedAt,
	})
}

// Refresh 手动触发牌价刷新
// @Summary 手动触发牌价刷新
// @Description 立即抓取官方牌价并追加汇率快照
// @Tags ExchangeRate (汇率)
// @Produce json
// @Success 200 {object} dto.SuccessResp "新的汇率快照"
// @Failure 500 {object} dto.ErrorResp "抓取失败"
// @Router /api/v1/exchange-rate/refresh [post]
func (c *RateController) Refresh(ctx *gin.Context) {
	snap, err := c.rateSvc.RefreshOfficialRate(ctx.Request.Context())
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, dto.ExchangeRateResp{
		OfficialRate:     snap.OfficialRate,
		ManualAdjustment: snap.ManualAdjustment,
		EffectiveRate:    snap.EffectiveRate,
		Source:           snap.Source,
		Notes:            snap.Notes,
		UpdatedAt:        snap.UpdatedAt,
	})
}

// History 汇率历史
// @Summary 汇率历史
// @Description 按时间倒序返回汇率快照列表
// @Tags ExchangeRate (汇率)
// @Produce json
// @Param limit query int false "返回条数，默认 20"
// @Success 200 {object} dto.SuccessResp "汇率历史"
// @Router /api/v1/exchange-rate/history [get]
func (c *RateController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	resp, err := c.rateSvc.History(ctx.Request.Context(), limit)
	if err != nil {
		respondCalcError(ctx, err)
		return
	}

	respondOK(ctx, resp)
}
