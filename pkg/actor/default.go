package actor

import "sync"

var (
	defaultOnce   sync.Once
	defaultSystem *System
)

// Default 返回进程级默认系统，首次调用时创建
func Default() *System {
	defaultOnce.Do(func() {
		defaultSystem = NewSystem("default")
	})
	return defaultSystem
}

// Spawn 在默认系统中创建 Actor
func Spawn(actor Actor) ID {
	return Default().Spawn(actor)
}

// SpawnFunc 在默认系统中使用函数创建 Actor
func SpawnFunc(fn func(ctx *Context)) ID {
	return Default().SpawnFunc(fn)
}

// Send 通过默认系统从宿主代码发送消息
func Send(to ID, typ MessageType, payload []byte) {
	Default().Send(to, typ, payload)
}

// Join 等待默认系统中的所有 Actor 终止
func Join() {
	Default().Join()
}
