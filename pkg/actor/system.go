package actor

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// System Actor 系统
// 管理 Actor 注册表、全局邮箱以及 Actor 的创建与回收
type System struct {
	// 基本信息
	name     string
	instance uuid.UUID

	// Actor 注册表
	registry *registry

	// 全局邮箱
	mailbox *mailbox

	// 配置
	config *SystemConfig

	// 统计信息
	stats *statsCollector

	// 日志
	logger *slog.Logger
}

// NewSystem 创建新的 Actor 系统
func NewSystem(name string) *System {
	return NewSystemWithConfig(name, DefaultSystemConfig())
}

// NewSystemWithConfig 使用配置创建 Actor 系统
func NewSystemWithConfig(name string, config *SystemConfig) *System {
	if config == nil {
		config = DefaultSystemConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	instance := uuid.New()
	s := &System{
		name:     name,
		instance: instance,
		registry: newRegistry(),
		mailbox:  newMailbox(),
		config:   config,
		stats:    newStatsCollector(),
		logger:   logger.With("system", name, "instance", instance.String()),
	}

	s.logger.Info("actor system started")
	return s
}

// Name 返回系统名称
func (s *System) Name() string {
	return s.name
}

// Instance 返回系统实例 ID
func (s *System) Instance() uuid.UUID {
	return s.instance
}

// Logger 返回系统日志器
func (s *System) Logger() *slog.Logger {
	return s.logger
}

// Spawn 创建 Actor，返回可作为发送目标的 ID
func (s *System) Spawn(actor Actor) ID {
	return s.spawn(actor, NoSender)
}

// SpawnFunc 使用函数创建 Actor
func (s *System) SpawnFunc(fn func(ctx *Context)) ID {
	return s.spawn(ActorFunc(fn), NoSender)
}

// spawn 内部创建方法
// 先登记再启动 goroutine，保证用户代码运行前记录已在注册表中
func (s *System) spawn(actor Actor, parent ID) ID {
	cell := newActorCell(actor, parent)
	id := s.registry.register(cell)
	s.stats.recordSpawned()

	go s.run(cell)

	s.logger.Debug("spawned actor", "actor", id, "parent", parent)
	return id
}

// run Actor 生命周期包装
// terminate 最先注册，即使 PanicHandler 自身 panic 也会执行
func (s *System) run(cell *actorCell) {
	defer s.terminate(cell)
	defer func() {
		if r := recover(); r != nil {
			s.handlePanic(cell, r)
		}
	}()

	ctx := &Context{
		Self:   cell.id,
		Parent: cell.parent,
		system: s,
		cell:   cell,
	}
	cell.actor.Run(ctx)
}

// handlePanic 处理 Actor 主体的 panic
// PanicHandler 再次 panic 时只记录日志
func (s *System) handlePanic(cell *actorCell, r any) {
	if s.config.PanicHandler == nil {
		s.logger.Error("panic in actor",
			"actor", cell.id,
			"error", r,
			"stack", string(debug.Stack()))
		return
	}

	defer func() {
		if r2 := recover(); r2 != nil {
			s.logger.Error("panic in panic handler",
				"actor", cell.id,
				"error", r2,
				"cause", r)
		}
	}()
	s.config.PanicHandler(cell.id, r)
}

// terminate 清空邮件并发出终止事件
func (s *System) terminate(cell *actorCell) {
	discarded := s.mailbox.closeAndDrain(cell)
	close(cell.done)
	s.stats.recordTerminated(discarded)
	s.registry.notify()

	if discarded > 0 && s.config.LogDiscarded {
		s.logger.Warn("discarded pending mail of terminated actor",
			"actor", cell.id, "count", discarded)
	}
	s.logger.Debug("actor terminated", "actor", cell.id)
}

// ═══════════════════════════════════════════════════════════════════════════
// 发送 / 接收 / 休眠
// ═══════════════════════════════════════════════════════════════════════════

// Send 从宿主代码发送消息，源 ID 为 NoSender
func (s *System) Send(to ID, typ MessageType, payload []byte) {
	_ = s.send(context.Background(), NoSender, to, typ, payload)
}

// SendContext 带 context 的发送
// 仅在 context 取消时返回错误；目标已终止时消息被静默丢弃
func (s *System) SendContext(ctx context.Context, to ID, typ MessageType, payload []byte) error {
	return s.send(ctx, NoSender, to, typ, payload)
}

func (s *System) send(ctx context.Context, from, to ID, typ MessageType, payload []byte) error {
	cell, err := s.registry.waitKnown(ctx, to)
	if err == nil {
		err = cell.waitReady(ctx)
	}
	if err != nil {
		if errors.Is(err, errActorGone) {
			s.discard(from, to, typ)
			return nil
		}
		return errors.Wrapf(err, "send to %s", to)
	}

	msg := newMessage(to, from, typ, payload)
	msg.stats = s.stats
	if !s.mailbox.enqueue(msg, cell) {
		msg.Release()
		s.discard(from, to, typ)
		return nil
	}
	s.stats.recordSent()

	cell.signal()
	return nil
}

func (s *System) discard(from, to ID, typ MessageType) {
	s.stats.recordDiscarded()
	if s.config.LogDiscarded {
		s.logger.Warn("message discarded, destination is gone",
			"to", to, "from", from, "type", uint64(typ))
	}
}

// receive 先查邮箱，无消息时等待唤醒令牌，醒来后再查
func (s *System) receive(ctx context.Context, cell *actorCell) (*Message, error) {
	cell.markReady()
	for {
		if msg := s.mailbox.dequeueOne(cell.id); msg != nil {
			s.stats.recordDelivered(msg)
			return msg, nil
		}

		select {
		case <-cell.wake:
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "receive on %s", cell.id)
		}
	}
}

func (s *System) tryReceive(cell *actorCell) (*Message, bool) {
	cell.markReady()
	msg := s.mailbox.dequeueOne(cell.id)
	if msg == nil {
		return nil, false
	}
	s.stats.recordDelivered(msg)
	return msg, true
}

// sleep 在唤醒令牌上做一次有界等待，可能因无关的发送提前返回
// 令牌可能是之前无需等待的 Receive 留下的，此时 sleep 立即返回
func (s *System) sleep(ctx context.Context, cell *actorCell, d time.Duration) error {
	cell.markReady()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-cell.wake:
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "sleep on %s", cell.id)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Join / 回收
// ═══════════════════════════════════════════════════════════════════════════

// Join 阻塞直到所有 Actor（包括 Actor 创建的子 Actor）都已终止并被回收
// 不能在 Actor 内部调用：调用者自身永远不会终止
func (s *System) Join() {
	_ = s.JoinContext(context.Background())
}

// JoinContext 带 context 的 Join
func (s *System) JoinContext(ctx context.Context) error {
	err := s.registry.waitEmpty(ctx, func(c *actorCell) {
		s.logger.Debug("reaped actor", "actor", c.id)
	})
	if err != nil {
		return errors.Wrap(err, "join")
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 诊断
// ═══════════════════════════════════════════════════════════════════════════

// Stats 获取统计信息
func (s *System) Stats() *SystemStats {
	stats := s.stats.snapshot()
	stats.RegisteredActors = s.registry.len()
	stats.PendingMessages = s.mailbox.Len()
	return stats
}

// Actors 按登记顺序列出注册表中的 Actor
func (s *System) Actors() []ActorInfo {
	return s.registry.snapshot()
}

// Lookup 查询 Actor 诊断信息
func (s *System) Lookup(id ID) (ActorInfo, bool) {
	cell, ok := s.registry.lookup(id)
	if !ok {
		return ActorInfo{}, false
	}
	return cell.info(), true
}

// Count 返回注册表中的 Actor 数量
func (s *System) Count() int {
	return s.registry.len()
}

// Pending 返回发往 id 的待投递消息数
func (s *System) Pending(id ID) int {
	return s.mailbox.Pending(id)
}

// LogActors 以 Debug 级别输出注册表内容
func (s *System) LogActors() {
	for _, info := range s.Actors() {
		s.logger.Debug("actor",
			"actor", info.ID,
			"parent", info.Parent,
			"ready", info.Ready,
			"terminated", info.Terminated,
			"age", time.Since(info.SpawnedAt))
	}
}
