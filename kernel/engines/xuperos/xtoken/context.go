package xtoken

import (
	"fmt"

	"github.com/xuperchain/xcontrol/kernel/common/xcontext"
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/common"
	"github.com/xuperchain/xcontrol/lib/timer"
)

type Context struct {
	// 基础上下文
	xcontext.BaseCtx

	BcName string

	Contract contract.Manager
	ChainCtx *common.ChainCtx
}

func NewXTokenCtx(cctx *common.ChainCtx) (*Context, error) {
	if cctx == nil || cctx.XLog == nil {
		return nil, fmt.Errorf("new xtoken ctx failed because param error")
	}

	ctx := new(Context)
	ctx.XLog = cctx.XLog
	ctx.Timer = timer.NewXTimer()
	ctx.BcName = cctx.BCName
	ctx.Contract = cctx.Contract
	ctx.ChainCtx = cctx
	return ctx, nil
}
