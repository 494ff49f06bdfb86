package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCell(id ID) *actorCell {
	c := newActorCell(nil, NoSender)
	c.id = id
	return c
}

func TestMailboxEnqueueDequeue(t *testing.T) {
	mb := newMailbox()
	dest := testCell(1)

	require.True(t, mb.enqueue(newMessage(1, 2, typePing, []byte("msg1")), dest))
	msg := mb.dequeueOne(1)
	require.NotNil(t, msg)
	assert.Equal(t, "msg1", string(msg.Payload()))
	assert.Equal(t, ID(1), msg.To())
	assert.Equal(t, ID(2), msg.From())
	assert.Equal(t, typePing, msg.Type())

	assert.Nil(t, mb.dequeueOne(1))
}

func TestMailboxPerDestinationOrdering(t *testing.T) {
	mb := newMailbox()
	a, b := testCell(1), testCell(2)

	mb.enqueue(newMessage(1, 0, typeCount, []byte("a1")), a)
	mb.enqueue(newMessage(2, 0, typeCount, []byte("b1")), b)
	mb.enqueue(newMessage(1, 0, typeCount, []byte("a2")), a)
	mb.enqueue(newMessage(2, 0, typeCount, []byte("b2")), b)
	mb.enqueue(newMessage(1, 0, typeCount, []byte("a3")), a)

	assert.Equal(t, 5, mb.Len())
	assert.Equal(t, 3, mb.Pending(1))
	assert.Equal(t, 2, mb.Pending(2))

	for _, want := range []string{"b1", "b2"} {
		msg := mb.dequeueOne(2)
		require.NotNil(t, msg)
		assert.Equal(t, want, string(msg.Payload()))
	}
	for _, want := range []string{"a1", "a2", "a3"} {
		msg := mb.dequeueOne(1)
		require.NotNil(t, msg)
		assert.Equal(t, want, string(msg.Payload()))
	}
	assert.Equal(t, 0, mb.Len())
}

func TestMailboxCloseAndDrainKeepsOtherMail(t *testing.T) {
	mb := newMailbox()
	a, b := testCell(1), testCell(2)

	var drained []*Message
	for i := 0; i < 3; i++ {
		msg := newMessage(1, 0, typeCount, []byte{byte(i)})
		drained = append(drained, msg)
		mb.enqueue(msg, a)
		mb.enqueue(newMessage(2, 0, typeCount, []byte{byte(i)}), b)
	}

	assert.Equal(t, 3, mb.closeAndDrain(a))
	assert.Equal(t, 0, mb.Pending(1))
	assert.Equal(t, 3, mb.Pending(2))
	for _, msg := range drained {
		assert.True(t, msg.Released())
	}
	assert.Equal(t, 0, mb.closeAndDrain(a))
}

func TestMailboxCloseAndDrainRefusesEnqueue(t *testing.T) {
	mb := newMailbox()
	dest := testCell(7)

	mb.enqueue(newMessage(7, 0, typeCount, nil), dest)
	assert.Equal(t, 1, mb.closeAndDrain(dest))
	assert.True(t, dest.closed)

	assert.False(t, mb.enqueue(newMessage(7, 0, typeCount, nil), dest))
	assert.Equal(t, 0, mb.Len())
}

func TestMessageRelease(t *testing.T) {
	msg := newMessage(1, 2, typePing, []byte("payload"))
	assert.Equal(t, 7, msg.Len())
	assert.False(t, msg.Released())
	assert.False(t, msg.SentAt().IsZero())

	msg.Release()
	assert.True(t, msg.Released())
	assert.Nil(t, msg.Payload())
	assert.Equal(t, 7, msg.Len())

	// 重复释放为空操作
	assert.NotPanics(t, msg.Release)
}

func TestMessageNilPayload(t *testing.T) {
	msg := newMessage(1, 2, typePing, nil)
	assert.Equal(t, 0, msg.Len())
	assert.Empty(t, msg.Payload())
}

func TestUseReleasesOnPanic(t *testing.T) {
	msg := newMessage(1, 2, typePing, []byte("x"))

	assert.Panics(t, func() {
		Use(msg, func(*Message) { panic("boom") })
	})
	assert.True(t, msg.Released())

	// nil 消息直接忽略
	assert.NotPanics(t, func() { Use(nil, func(*Message) { t.Fatal("called") }) })
}

func TestUseAllowsEarlyRelease(t *testing.T) {
	msg := newMessage(1, 2, typePing, []byte("x"))
	Use(msg, func(m *Message) {
		m.Release()
		assert.Nil(t, m.Payload())
	})
	assert.True(t, msg.Released())
}
