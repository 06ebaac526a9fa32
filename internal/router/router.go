package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"importbr_v1_202609/internal/controller"
)

// Controllers 控制器集合
type Controllers struct {
	Calc *controller.CalcController
	Rate *controller.RateController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api/v1")
	{
		// 费用计算
		calc := api.Group("/calc")
		{
			// POST /api/v1/calc/estimate
			calc.POST("/estimate", ctl.Calc.Estimate)

			// POST /api/v1/calc/freight
			calc.POST("/freight", ctl.Calc.CalculateFreight)

			// POST /api/v1/calc/import-cost
			calc.POST("/import-cost", ctl.Calc.CalculateImportCost)
		}

		// 线路列表
		api.GET("/shipping-lines", ctl.Calc.GetShippingLines)

		// 汇率维护
		rate := api.Group("/exchange-rate")
		{
			rate.GET("", ctl.Rate.GetCurrent)
			rate.PUT("/adjustment", ctl.Rate.UpdateAdjustment)
			rate.POST("/refresh", ctl.Rate.Refresh)
			rate.GET("/history", ctl.Rate.History)
		}
	}
}
