package actor

import (
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 系统统计信息
// ═══════════════════════════════════════════════════════════════════════════

// SystemStats 系统统计快照
type SystemStats struct {
	SpawnedActors     int64         // 累计创建的 Actor 数
	LiveActors        int64         // 主体尚未返回的 Actor 数
	RegisteredActors  int           // 注册表中的记录数（含待回收）
	SentMessages      int64         // 成功进入邮箱的消息数
	DeliveredMessages int64         // 被 Receive 取出的消息数
	DiscardedMessages int64         // 因目标终止而丢弃的消息数
	ReleasedMessages  int64         // 已释放内容的消息数（含终止清空与投递被拒）
	PendingMessages   int           // 邮箱中待投递的消息数
	AverageLatency    time.Duration // 发送到取出的平均延迟
	StartTime         time.Time
}

// statsCollector 使用原子操作的统计收集器
type statsCollector struct {
	spawned        atomic.Int64
	live           atomic.Int64
	sent           atomic.Int64
	delivered      atomic.Int64
	discarded      atomic.Int64
	released       atomic.Int64
	totalLatencyNs atomic.Int64

	startTime time.Time
}

func newStatsCollector() *statsCollector {
	return &statsCollector{startTime: time.Now()}
}

func (c *statsCollector) recordSpawned() {
	c.spawned.Add(1)
	c.live.Add(1)
}

func (c *statsCollector) recordTerminated(discarded int) {
	c.live.Add(-1)
	c.discarded.Add(int64(discarded))
}

func (c *statsCollector) recordSent() {
	c.sent.Add(1)
}

func (c *statsCollector) recordDiscarded() {
	c.discarded.Add(1)
}

func (c *statsCollector) recordReleased() {
	c.released.Add(1)
}

func (c *statsCollector) recordDelivered(msg *Message) {
	c.delivered.Add(1)
	c.totalLatencyNs.Add(int64(time.Since(msg.sentAt)))
}

// snapshot 生成统计快照，注册表与邮箱相关字段由调用方填充
func (c *statsCollector) snapshot() *SystemStats {
	delivered := c.delivered.Load()

	var avgLatency time.Duration
	if delivered > 0 {
		avgLatency = time.Duration(c.totalLatencyNs.Load()) / time.Duration(delivered)
	}

	return &SystemStats{
		SpawnedActors:     c.spawned.Load(),
		LiveActors:        c.live.Load(),
		SentMessages:      c.sent.Load(),
		DeliveredMessages: delivered,
		DiscardedMessages: c.discarded.Load(),
		ReleasedMessages:  c.released.Load(),
		AverageLatency:    avgLatency,
		StartTime:         c.startTime,
	}
}
