// 统一管理系统引擎和链运行上下文
package common

import (
	"github.com/xuperchain/xcontrol/bcs/ledger/xledger/state"
	xconf "github.com/xuperchain/xcontrol/kernel/common/xconfig"
	xctx "github.com/xuperchain/xcontrol/kernel/common/xcontext"
	"github.com/xuperchain/xcontrol/kernel/contract"
	engconf "github.com/xuperchain/xcontrol/kernel/engines/xuperos/config"
)

// 引擎运行上下文环境
type EngineCtx struct {
	// 基础上下文
	xctx.BaseCtx
	// 运行环境配置
	EnvCfg *xconf.EnvConf
	// 引擎配置
	EngCfg *engconf.EngineConf
}

// 链级别上下文
type ChainCtx struct {
	// 基础上下文
	xctx.BaseCtx
	// 引擎上下文
	EngCtx *EngineCtx
	// 链名
	BCName string
	// 状态机
	State *state.State
	// 合约
	Contract contract.Manager
}
