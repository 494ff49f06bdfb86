package actor

import (
	"context"

	"github.com/pkg/errors"
)

// ═══════════════════════════════════════════════════════════════════════════
// 消息所有权辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// Use 在 fn 返回（包括 panic）后释放消息
// fn 内部仍可提前调用 msg.Release()
//
// 用法示例:
//
//	actor.Use(ctx.Receive(), func(msg *actor.Message) {
//		fmt.Println(string(msg.Payload()))
//	})
func Use(msg *Message, fn func(msg *Message)) {
	if msg == nil {
		return
	}
	defer msg.Release()
	fn(msg)
}

// Handle 接收一条消息并交给 fn 处理，处理结束后释放
func (c *Context) Handle(fn func(msg *Message)) {
	Use(c.Receive(), fn)
}

// HandleContext 带 context 的 Handle
func (c *Context) HandleContext(ctx context.Context, fn func(msg *Message)) error {
	msg, err := c.ReceiveContext(ctx)
	if err != nil {
		return err
	}
	Use(msg, fn)
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 请求-回复辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// Call 发送消息后阻塞接收下一条发给自己的消息
//
// 协议本身没有关联标记：返回的消息不一定是对这次发送的回复，
// 调用方仍需检查 From() 与 Type()。
func Call(ctx context.Context, c *Context, to ID, typ MessageType, payload []byte) (*Message, error) {
	if err := c.SendContext(ctx, to, typ, payload); err != nil {
		return nil, err
	}
	return c.ReceiveContext(ctx)
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误处理工具
// ═══════════════════════════════════════════════════════════════════════════

// IsContextError 检查错误是否为 context 相关错误（支持包装后的错误）
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IgnoreContextError 如果是 context 错误则返回 nil
func IgnoreContextError(err error) error {
	if IsContextError(err) {
		return nil
	}
	return err
}
