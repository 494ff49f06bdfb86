package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reclaim(r *registry, id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reclaimLocked(id)
}

func TestRegistryRegisterLookupReclaim(t *testing.T) {
	r := newRegistry()

	c1 := newActorCell(nil, NoSender)
	c2 := newActorCell(nil, NoSender)
	assert.Equal(t, ID(1), r.register(c1))
	assert.Equal(t, ID(2), r.register(c2))
	assert.Equal(t, 2, r.len())

	got, ok := r.lookup(2)
	require.True(t, ok)
	assert.Same(t, c2, got)

	_, ok = r.lookup(3)
	assert.False(t, ok)

	assert.True(t, reclaim(r, 1))
	assert.False(t, reclaim(r, 1))
	assert.Equal(t, 1, r.len())

	// 回收后 ID 不复用
	assert.Equal(t, ID(3), r.register(newActorCell(nil, NoSender)))
}

func TestRegistryWaitKnown(t *testing.T) {
	r := newRegistry()

	found := make(chan *actorCell, 1)
	go func() {
		c, err := r.waitKnown(context.Background(), 1)
		assert.NoError(t, err)
		found <- c
	}()

	select {
	case <-found:
		t.Fatal("waitKnown returned before registration")
	case <-time.After(20 * time.Millisecond):
	}

	c := newActorCell(nil, NoSender)
	r.register(c)

	select {
	case got := <-found:
		assert.Same(t, c, got)
	case <-time.After(time.Second):
		t.Fatal("waitKnown was not woken by registration")
	}
}

func TestRegistryWaitKnownReclaimed(t *testing.T) {
	r := newRegistry()
	id := r.register(newActorCell(nil, NoSender))
	reclaim(r, id)

	_, err := r.waitKnown(context.Background(), id)
	assert.ErrorIs(t, err, errActorGone)

	_, err = r.waitKnown(context.Background(), NoSender)
	assert.ErrorIs(t, err, errActorGone)
}

func TestRegistryReapTerminated(t *testing.T) {
	r := newRegistry()
	cells := make([]*actorCell, 4)
	for i := range cells {
		cells[i] = newActorCell(nil, NoSender)
		r.register(cells[i])
	}

	close(cells[1].done)
	close(cells[3].done)

	r.mu.Lock()
	reaped := r.reapLocked()
	r.mu.Unlock()
	require.Len(t, reaped, 2)
	assert.Same(t, cells[1], reaped[0])
	assert.Same(t, cells[3], reaped[1])

	infos := r.snapshot()
	require.Len(t, infos, 2)
	assert.Equal(t, cells[0].id, infos[0].ID)
	assert.Equal(t, cells[2].id, infos[1].ID)
}

func TestRegistryWaitEmpty(t *testing.T) {
	r := newRegistry()
	c := newActorCell(nil, NoSender)
	r.register(c)

	done := make(chan error, 1)
	var reaped []ID
	go func() {
		done <- r.waitEmpty(context.Background(), func(c *actorCell) {
			reaped = append(reaped, c.id)
		})
	}()

	select {
	case <-done:
		t.Fatal("waitEmpty returned with a live record")
	case <-time.After(20 * time.Millisecond):
	}

	close(c.done)
	r.notify()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Equal(t, []ID{c.id}, reaped)
	case <-time.After(time.Second):
		t.Fatal("waitEmpty was not woken by termination")
	}
}

func TestCellReadiness(t *testing.T) {
	c := newActorCell(nil, NoSender)
	assert.False(t, c.isReady())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.waitReady(ctx), context.DeadlineExceeded)

	c.markReady()
	c.markReady()
	assert.True(t, c.isReady())
	assert.NoError(t, c.waitReady(context.Background()))
}

func TestCellSignalIsRetained(t *testing.T) {
	c := newActorCell(nil, NoSender)

	// 多次信号合并为一个令牌
	c.signal()
	c.signal()

	select {
	case <-c.wake:
	default:
		t.Fatal("signal token lost")
	}
	select {
	case <-c.wake:
		t.Fatal("signals were not coalesced")
	default:
	}
}
