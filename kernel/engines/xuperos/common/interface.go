package common

import (
	"github.com/xuperchain/xcontrol/bcs/ledger/xledger/state"
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/engines"
)

// 定义xuperos引擎对外暴露接口
// 依赖接口而不是依赖具体实现
type Engine interface {
	engines.BCEngine
	Context() *EngineCtx
	Chain() *ChainCtx
	Manager() contract.Manager
	State() *state.State
}
