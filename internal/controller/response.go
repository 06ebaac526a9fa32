package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"importbr_v1_202609/internal/api/dto"
	"importbr_v1_202609/internal/service"
)

// ==================== 响应辅助 ====================

// respondOK 成功响应包裹
func respondOK(ctx *gin.Context, result interface{}) {
	ctx.JSON(http.StatusOK, dto.SuccessResp{
		Success: true,
		Result:  result,
	})
}

// respondError 失败响应包裹
func respondError(ctx *gin.Context, status int, errType, field, message string) {
	ctx.JSON(status, dto.ErrorResp{
		Success: false,
		Error: dto.ErrorInfo{
			Type:    errType,
			Field:   field,
			Message: message,
		},
	})
}

// respondCalcError 按错误分类映射状态码
// 校验错误、未知线路 → 400；其余 → 500，且不向调用方透出内部细节
func respondCalcError(ctx *gin.Context, err error) {
	var calcErr *service.CalcError
	if errors.As(err, &calcErr) {
		switch calcErr.Type {
		case service.ErrTypeValidation, service.ErrTypeConfiguration:
			respondError(ctx, http.StatusBadRequest, calcErr.Type, calcErr.Field, calcErr.Message)
			return
		}
	}

	log.Printf("[Calc] 内部错误: %v", err)
	respondError(ctx, http.StatusInternalServerError, service.ErrTypeServer, "", "服务内部错误，请稍后重试")
}
