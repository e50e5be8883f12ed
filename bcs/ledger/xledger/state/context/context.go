package context

import (
	"fmt"

	xctx "github.com/xuperchain/xcontrol/kernel/common/xcontext"
	"github.com/xuperchain/xcontrol/lib/logs"
	"github.com/xuperchain/xcontrol/lib/timer"
)

// 状态机运行上下文环境
type StateCtx struct {
	// 基础上下文
	xctx.BaseCtx
	// 链名
	BCName string
	// 读缓存的key数量
	CacheSize int
	// 内存中保留的最近事件数量
	EventHistory int
}

func NewStateCtx(bcName string, log logs.Logger, cacheSize, eventHistory int) (*StateCtx, error) {
	if bcName == "" || log == nil {
		return nil, fmt.Errorf("create state context failed because some param are missing")
	}
	if cacheSize <= 0 || eventHistory <= 0 {
		return nil, fmt.Errorf("create state context failed because cache size invalid")
	}

	ctx := new(StateCtx)
	ctx.XLog = log
	ctx.Timer = timer.NewXTimer()
	ctx.BCName = bcName
	ctx.CacheSize = cacheSize
	ctx.EventHistory = eventHistory
	return ctx, nil
}
