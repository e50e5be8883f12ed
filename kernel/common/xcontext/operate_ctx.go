package xcontext

import (
	"fmt"

	"github.com/xuperchain/xcontrol/lib/logs"
	"github.com/xuperchain/xcontrol/lib/timer"
)

// 通用操作级上下文，一次合约调用对应一个
type ComOpCtx struct {
	BaseCtx
}

func CreateComOpCtx(xlog logs.Logger, tmr *timer.XTimer) (*ComOpCtx, error) {
	if xlog == nil || tmr == nil {
		return nil, fmt.Errorf("create operate context failed because some param are missing")
	}

	ctx := new(ComOpCtx)
	ctx.XLog = xlog
	ctx.Timer = tmr
	return ctx, nil
}

func (t *ComOpCtx) IsVaild() bool {
	return t != nil && t.XLog != nil && t.Timer != nil
}
