package actor

import (
	"sync/atomic"
	"time"
)

// Message 消息信封
//
// 由发送方构造，构造时完整复制调用方的 payload，之后不可变。
// 投递后所有权转移给接收方，接收方用完后必须调用 [Message.Release]。
type Message struct {
	to      ID
	from    ID
	typ     MessageType
	payload []byte
	size    int
	sentAt  time.Time

	released atomic.Bool
	stats    *statsCollector
}

// newMessage 创建消息，复制 len(payload) 字节
func newMessage(to, from ID, typ MessageType, payload []byte) *Message {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return &Message{
		to:      to,
		from:    from,
		typ:     typ,
		payload: buf,
		size:    len(payload),
		sentAt:  time.Now(),
	}
}

// To 目标 Actor ID
func (m *Message) To() ID { return m.to }

// From 源 Actor ID，宿主代码发送时为 NoSender
func (m *Message) From() ID { return m.from }

// Type 消息类型标签
func (m *Message) Type() MessageType { return m.typ }

// Len 发送时的 payload 字节数
func (m *Message) Len() int { return m.size }

// SentAt 消息构造时间
func (m *Message) SentAt() time.Time { return m.sentAt }

// Payload 返回消息内容
// 释放后返回 nil；调用方不得在 Release 之后继续使用先前取得的切片
func (m *Message) Payload() []byte {
	if m.released.Load() {
		return nil
	}
	return m.payload
}

// Release 释放消息内容
// 每条收到的消息应恰好释放一次，重复释放为空操作
func (m *Message) Release() {
	if m.released.CompareAndSwap(false, true) {
		m.payload = nil
		if m.stats != nil {
			m.stats.recordReleased()
		}
	}
}

// Released 是否已释放
func (m *Message) Released() bool {
	return m.released.Load()
}
