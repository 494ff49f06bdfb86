package actor

import (
	"context"
	"log/slog"
	"time"
)

// Context Actor 执行上下文
// 只能在所属 Actor 自己的 goroutine 中使用
type Context struct {
	// Self 当前 Actor 的 ID
	Self ID
	// Parent 父 Actor 的 ID，由宿主创建时为 NoSender
	Parent ID

	system *System
	cell   *actorCell
}

// Receive 阻塞直到有一条发往自己的消息
func (c *Context) Receive() *Message {
	msg, _ := c.system.receive(context.Background(), c.cell)
	return msg
}

// ReceiveContext 带 context 的 Receive
func (c *Context) ReceiveContext(ctx context.Context) (*Message, error) {
	return c.system.receive(ctx, c.cell)
}

// TryReceive 非阻塞接收，同样会标记自己为就绪
func (c *Context) TryReceive() (*Message, bool) {
	return c.system.tryReceive(c.cell)
}

// Send 发送消息（fire-and-forget）
// 目标尚未登记时阻塞，目标尚未就绪时阻塞；目标已终止时消息被丢弃
func (c *Context) Send(to ID, typ MessageType, payload []byte) {
	_ = c.system.send(context.Background(), c.Self, to, typ, payload)
}

// SendContext 带 context 的发送
func (c *Context) SendContext(ctx context.Context, to ID, typ MessageType, payload []byte) error {
	return c.system.send(ctx, c.Self, to, typ, payload)
}

// Reply 回复消息给发送者
// 没有请求/响应关联标记，接收方需通过类型或内容自行区分
func (c *Context) Reply(msg *Message, typ MessageType, payload []byte) {
	c.Send(msg.From(), typ, payload)
}

// Sleep 尽力而为的延时，可能提前返回，返回时不代表有消息可取
//
// Sleep 会消费残留的唤醒令牌：若之前的 Receive 直接取到了消息而未等待，
// 该消息留下的令牌仍在，紧随其后的 Sleep 会立即返回。
func (c *Context) Sleep(d time.Duration) {
	_ = c.system.sleep(context.Background(), c.cell, d)
}

// SleepContext 带 context 的 Sleep
func (c *Context) SleepContext(ctx context.Context, d time.Duration) error {
	return c.system.sleep(ctx, c.cell, d)
}

// Spawn 创建子 Actor
func (c *Context) Spawn(actor Actor) ID {
	return c.system.spawn(actor, c.Self)
}

// SpawnFunc 使用函数创建子 Actor
func (c *Context) SpawnFunc(fn func(ctx *Context)) ID {
	return c.system.spawn(ActorFunc(fn), c.Self)
}

// System 获取 Actor 系统引用
func (c *Context) System() *System {
	return c.system
}

// Logger 返回带 actor 属性的日志器
func (c *Context) Logger() *slog.Logger {
	return c.system.logger.With("actor", c.Self)
}
