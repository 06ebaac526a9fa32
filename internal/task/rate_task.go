package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"importbr_v1_202609/internal/service"
)

// ==================== RateRefreshTask 汇率刷新任务 ====================

// RateRefreshTask 汇率定时刷新任务
// 刷新策略：
//   - 启动后延迟 10 秒执行一次
//   - 之后每 6 小时刷新一次官方牌价
//
// 刷新失败只记日志：计算链路有数据库快照和兜底常量托底
type RateRefreshTask struct {
	rateSvc *service.ExchangeRateService
	cron    *cron.Cron
}

// NewRateRefreshTask 创建汇率刷新任务
func NewRateRefreshTask(rateSvc *service.ExchangeRateService) *RateRefreshTask {
	return &RateRefreshTask{
		rateSvc: rateSvc,
		cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *RateRefreshTask) Start() {
	// 首次执行（延迟 10 秒，等待服务就绪）
	go func() {
		time.Sleep(10 * time.Second)
		t.refresh()
	}()

	// 每 6 小时刷新
	_, _ = t.cron.AddFunc("0 0 */6 * * *", t.refresh)

	t.cron.Start()
	log.Println("[RateTask] 汇率刷新任务已启动")
}

// Stop 停止定时任务
func (t *RateRefreshTask) Stop() {
	t.cron.Stop()
}

func (t *RateRefreshTask) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := t.rateSvc.RefreshOfficialRate(ctx)
	if err != nil {
		log.Printf("[RateTask] 汇率刷新失败: %v", err)
		return
	}
	log.Printf("[RateTask] 汇率已刷新: official=%.4f effective=%.4f", snap.OfficialRate, snap.EffectiveRate)
}
