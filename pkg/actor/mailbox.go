package actor

import (
	"container/list"
	"sync"
)

// mailbox 全局消息队列
//
// 所有 Actor 共享一个有序队列，追加由同一把锁串行化，因此队列定义了所有发送的全序；
// 某个 ID 的取出顺序即该全序在此目标上的投影。两种操作都是 O(n)。
type mailbox struct {
	mu    sync.Mutex
	queue *list.List
}

func newMailbox() *mailbox {
	return &mailbox{queue: list.New()}
}

// enqueue 追加消息到队尾
// 目标已关闭时拒绝追加并返回 false，消息由调用方丢弃
func (m *mailbox) enqueue(msg *Message, dest *actorCell) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dest.closed {
		return false
	}
	m.queue.PushBack(msg)
	return true
}

// dequeueOne 取出第一条发往 id 的消息，没有则返回 nil
func (m *mailbox) dequeueOne(id ID) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	for e := m.queue.Front(); e != nil; e = e.Next() {
		msg := e.Value.(*Message)
		if msg.to == id {
			m.queue.Remove(e)
			return msg
		}
	}
	return nil
}

// closeAndDrain 关闭目标并清空其邮件
// 与 enqueue 在同一临界区内判断 closed，保证清空之后不会再有消息进入
func (m *mailbox) closeAndDrain(c *actorCell) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.closed = true
	return m.drainLocked(c.id)
}

// drainLocked 丢弃所有发往 id 的消息，返回丢弃数量，调用方持有 mu
func (m *mailbox) drainLocked(id ID) int {
	n := 0
	for e := m.queue.Front(); e != nil; {
		next := e.Next()
		if msg := e.Value.(*Message); msg.to == id {
			m.queue.Remove(e)
			msg.Release()
			n++
		}
		e = next
	}
	return n
}

// Len 队列中待投递消息总数
func (m *mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// Pending 发往 id 的待投递消息数
func (m *mailbox) Pending(id ID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for e := m.queue.Front(); e != nil; e = e.Next() {
		if e.Value.(*Message).to == id {
			n++
		}
	}
	return n
}
