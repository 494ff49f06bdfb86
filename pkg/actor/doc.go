// Package actor 提供最小化的进程内 Actor 运行时
//
// 每个 Actor 运行在独立的 goroutine 中，主体函数返回即终止。
// Actor 之间通过类型标签 + 字节 payload 的消息通信：
// • 所有 Actor 共享一个全局有序邮箱，同一目标的消息按发送进入邮箱的顺序取出
// • 发送时完整复制 payload，发送方可以立即复用自己的缓冲区
// • 接收方取得消息所有权，用完后调用 [Message.Release]，或使用 [Use] 自动释放
//
// # 核心组件
//
// [System] 是运行时入口，管理注册表与邮箱：
//
//	sys := actor.NewSystem("my-system")
//	sys.SpawnFunc(func(ctx *actor.Context) {
//		msg := ctx.Receive()
//		defer msg.Release()
//		ctx.Reply(msg, 2, []byte("PONG"))
//	})
//	sys.Join()
//
// [Context] 只在 Actor 自己的 goroutine 中使用，提供 Receive、Send、Reply、Sleep、Spawn。
//
// [Default] 返回进程级默认系统，包级函数 [Spawn]、[Send]、[Join] 作用于它。
//
// # 同步语义
//
// 发送方先等待目标出现在注册表中（known），再等待目标到达首个 Receive 或 Sleep（up），
// 之后才复制并投递消息。已终止目标的消息被静默丢弃，终止时其待投递邮件会被清空。
//
// [System.Join] 阻塞直到注册表为空，包括 Actor 传递性创建的所有子 Actor。
//
// 没有监督、重启、优先级或容量限制；无法从外部停止一个正在运行的 Actor。
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package actor
