package actor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// ID Actor 唯一标识
// 在 spawn 时由注册表单调递增分配，生命周期内不变，永不复用
type ID uint64

// NoSender 宿主代码（非 Actor）发送消息时使用的源 ID
// 对 NoSender 的回复会被直接丢弃
const NoSender ID = 0

// String 返回 ID 的字符串表示
func (id ID) String() string {
	if id == NoSender {
		return "nosender"
	}
	return fmt.Sprintf("actor-%d", uint64(id))
}

// MessageType 消息类型标签（无符号整数）
// 运行时不解释其含义，由收发双方自行约定
type MessageType uint64

// Actor Actor 接口
// Run 即 Actor 的完整生命周期：Run 返回时 Actor 终止
type Actor interface {
	Run(ctx *Context)
}

// ActorFunc 函数式 Actor，便于快速创建简单 Actor
type ActorFunc func(ctx *Context)

// Run 实现 Actor 接口
func (f ActorFunc) Run(ctx *Context) {
	f(ctx)
}

// ActorInfo Actor 诊断信息快照
type ActorInfo struct {
	ID         ID
	Parent     ID
	Ready      bool
	Terminated bool
	SpawnedAt  time.Time
}

// errActorGone 目标 Actor 已终止或已被回收
var errActorGone = errors.New("actor is gone")

// SystemConfig 系统配置
type SystemConfig struct {
	// LogDiscarded 是否记录被丢弃的消息（目标已终止）
	LogDiscarded bool
	// PanicHandler Actor 主体 panic 处理函数
	// Actor 的失败对运行时不可见，此处仅用于观测
	PanicHandler func(id ID, err any)
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultSystemConfig 默认系统配置
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		LogDiscarded: true,
		PanicHandler: nil, // 使用默认处理
		Logger:       nil, // 使用默认 logger
	}
}
