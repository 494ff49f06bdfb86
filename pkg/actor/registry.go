package actor

import (
	"context"
	"sync"
	"time"
)

// actorCell Actor 单元，包含 Actor 及其运行时状态
type actorCell struct {
	id     ID
	parent ID
	actor  Actor

	// ready 首次 Receive/Sleep 时关闭，即 "up" 标志
	ready     chan struct{}
	readyOnce sync.Once

	// wake 容量为 1 的通知通道：发送方投递后放入令牌，
	// 令牌在被消费前一直存在，接收方进入等待前的信号不会丢失
	wake chan struct{}

	// done Actor 主体返回后关闭
	done chan struct{}

	// closed 由 mailbox.mu 保护
	closed bool

	spawnedAt time.Time
}

func newActorCell(actor Actor, parent ID) *actorCell {
	return &actorCell{
		parent:    parent,
		actor:     actor,
		ready:     make(chan struct{}),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		spawnedAt: time.Now(),
	}
}

func (c *actorCell) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

func (c *actorCell) isReady() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

func (c *actorCell) terminated() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// signal 通知 "此 ID 的邮件有变化"，非阻塞
func (c *actorCell) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// waitReady "up" 屏障：等待目标到达首个阻塞点
func (c *actorCell) waitReady(ctx context.Context) error {
	if c.isReady() {
		return nil
	}
	select {
	case <-c.ready:
		return nil
	case <-c.done:
		return errActorGone
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *actorCell) info() ActorInfo {
	return ActorInfo{
		ID:         c.id,
		Parent:     c.parent,
		Ready:      c.isReady(),
		Terminated: c.terminated(),
		SpawnedAt:  c.spawnedAt,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 注册表
// ═══════════════════════════════════════════════════════════════════════════

// registry 存活 Actor 注册表
//
// 所有插入、删除、查找都使用同一把互斥锁，锁只在扫描/拼接期间持有，
// 不跨越任何阻塞等待。每次变化都关闭并替换 changed，等待方据此被唤醒。
type registry struct {
	mu      sync.Mutex
	cells   []*actorCell
	lastID  ID
	changed chan struct{}
}

func newRegistry() *registry {
	return &registry{changed: make(chan struct{})}
}

// notifyLocked 广播变化，调用方持有 mu
func (r *registry) notifyLocked() {
	close(r.changed)
	r.changed = make(chan struct{})
}

// notify 广播变化（例如 Actor 终止）
func (r *registry) notify() {
	r.mu.Lock()
	r.notifyLocked()
	r.mu.Unlock()
}

// register 分配 ID 并登记，分配与登记在同一临界区内完成
func (r *registry) register(c *actorCell) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	c.id = r.lastID
	r.cells = append(r.cells, c)
	r.notifyLocked()
	return c.id
}

func (r *registry) findLocked(id ID) *actorCell {
	for _, c := range r.cells {
		if c.id == id {
			return c
		}
	}
	return nil
}

// lookup 按 ID 查找，不存在时返回 false
func (r *registry) lookup(id ID) (*actorCell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.findLocked(id)
	return c, c != nil
}

// reclaimLocked 移除记录，仅在确认终止后调用，调用方持有 mu
func (r *registry) reclaimLocked(id ID) bool {
	for i, c := range r.cells {
		if c.id == id {
			copy(r.cells[i:], r.cells[i+1:])
			r.cells[len(r.cells)-1] = nil
			r.cells = r.cells[:len(r.cells)-1]
			r.notifyLocked()
			return true
		}
	}
	return false
}

// waitKnown "known" 屏障：等待 id 出现在注册表中
//
// id 不大于已分配的最大 ID 却不在表中，说明已被回收，返回 errActorGone；
// 尚未分配的 id 会一直等到它被登记。
func (r *registry) waitKnown(ctx context.Context, id ID) (*actorCell, error) {
	for {
		r.mu.Lock()
		if c := r.findLocked(id); c != nil {
			r.mu.Unlock()
			return c, nil
		}
		if id <= r.lastID {
			r.mu.Unlock()
			return nil, errActorGone
		}
		changed := r.changed
		r.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// reapLocked 回收所有已终止的记录，返回被回收的记录，调用方持有 mu
func (r *registry) reapLocked() []*actorCell {
	var reaped []*actorCell
	for _, c := range r.cells {
		if c.terminated() {
			reaped = append(reaped, c)
		}
	}
	for _, c := range reaped {
		r.reclaimLocked(c.id)
	}
	return reaped
}

// waitEmpty 回收已终止的记录，直到注册表为空
func (r *registry) waitEmpty(ctx context.Context, onReap func(*actorCell)) error {
	for {
		r.mu.Lock()
		reaped := r.reapLocked()
		remaining := len(r.cells)
		changed := r.changed
		r.mu.Unlock()

		if onReap != nil {
			for _, c := range reaped {
				onReap(c)
			}
		}
		if remaining == 0 {
			return nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// snapshot 按登记顺序返回诊断信息
func (r *registry) snapshot() []ActorInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]ActorInfo, 0, len(r.cells))
	for _, c := range r.cells {
		infos = append(infos, c.info())
	}
	return infos
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}
