package xuperos

import (
	"fmt"
	"sync"

	"github.com/xuperchain/xcontrol/bcs/ledger/xledger/state"
	sctx "github.com/xuperchain/xcontrol/bcs/ledger/xledger/state/context"
	xconf "github.com/xuperchain/xcontrol/kernel/common/xconfig"
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/manager"
	"github.com/xuperchain/xcontrol/kernel/engines"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/blacklist"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/common"
	engconf "github.com/xuperchain/xcontrol/kernel/engines/xuperos/config"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/ctoken"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/rescue"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/xtoken"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
	"github.com/xuperchain/xcontrol/lib/logs"
	"github.com/xuperchain/xcontrol/lib/metrics"
	"github.com/xuperchain/xcontrol/lib/storage/kvdb"
	_ "github.com/xuperchain/xcontrol/lib/storage/kvdb/badger"
	_ "github.com/xuperchain/xcontrol/lib/storage/kvdb/leveldb"
	"github.com/xuperchain/xcontrol/lib/timer"
	"github.com/xuperchain/xcontrol/lib/utils"
)

// xuperos执行引擎，单链，承载内置的kernel合约
type XuperOSEngine struct {
	// 引擎运行环境上下文
	engCtx *common.EngineCtx
	// 链上下文
	chainCtx *common.ChainCtx
	// 日志
	log logs.Logger
	db  kvdb.Database

	exitOnce sync.Once
}

func NewXuperOSEngine() engines.BCEngine {
	return &XuperOSEngine{}
}

// 向工厂注册自己的创建方法
func init() {
	engines.Register(common.BCEngineName, NewXuperOSEngine)
}

// 转换引擎句柄类型
// 对外提供类型转义方法，以接口形式对外暴露
func EngineConvert(engine engines.BCEngine) (common.Engine, error) {
	if engine == nil {
		return nil, common.ErrParameter.More("transfer engine type failed because param is nil")
	}

	if v, ok := engine.(common.Engine); ok {
		return v, nil
	}

	return nil, common.ErrNotEngineType
}

// 初始化执行引擎环境上下文
func (t *XuperOSEngine) Init(envCfg *xconf.EnvConf) error {
	engCtx, err := t.createEngCtx(envCfg)
	if err != nil {
		return err
	}
	t.engCtx = engCtx
	t.log = engCtx.XLog
	t.log.Trace("init engine context succ")

	chainCtx, err := t.createChainCtx()
	if err != nil {
		return err
	}
	t.chainCtx = chainCtx
	t.log.Trace("init chain context succ", "bcname", chainCtx.BCName)

	if err := t.registerContracts(); err != nil {
		t.Exit()
		return err
	}

	if envCfg.MetricSwitch {
		metrics.RegisterMetrics()
	}
	t.log.Info("init engine succ", "bcname", chainCtx.BCName, "kvEngine", engCtx.EngCfg.KVEngine,
		"commitCount", chainCtx.State.CommitCount())
	return nil
}

// 关闭执行引擎，需要幂等
func (t *XuperOSEngine) Exit() {
	t.exitOnce.Do(func() {
		if t.chainCtx == nil || t.chainCtx.State == nil {
			return
		}
		if err := t.chainCtx.State.Close(); err != nil {
			t.log.Warn("close state failed", "err", err)
			return
		}
		t.log.Trace("engine exit")
	})
}

// 获取执行引擎环境
func (t *XuperOSEngine) Context() *common.EngineCtx {
	return t.engCtx
}

func (t *XuperOSEngine) Chain() *common.ChainCtx {
	return t.chainCtx
}

func (t *XuperOSEngine) Manager() contract.Manager {
	return t.chainCtx.Contract
}

func (t *XuperOSEngine) State() *state.State {
	return t.chainCtx.State
}

func (t *XuperOSEngine) createEngCtx(envCfg *xconf.EnvConf) (*common.EngineCtx, error) {
	if envCfg == nil {
		return nil, common.ErrParameter.More("create engine ctx failed because env config is nil")
	}

	// 加载引擎配置
	engCfg, err := engconf.LoadEngineConf(envCfg.GenConfFilePath(envCfg.EngineConf))
	if err != nil {
		return nil, common.ErrLoadEngConfFailed.More("%v", err)
	}

	log, err := openLog(envCfg)
	if err != nil {
		return nil, common.ErrNewLogFailed.More("%v", err)
	}

	engCtx := &common.EngineCtx{}
	engCtx.XLog = log
	engCtx.Timer = timer.NewXTimer()
	engCtx.EnvCfg = envCfg
	engCtx.EngCfg = engCfg

	return engCtx, nil
}

// 日志配置文件不存在时使用默认配置，日志目录以环境配置为准
func openLog(envCfg *xconf.EnvConf) (logs.Logger, error) {
	lc := logs.GetDefLogConf()
	logConfFile := envCfg.GenConfFilePath(envCfg.LogConf)
	if utils.FileIsExist(logConfFile) {
		var err error
		lc, err = logs.LoadLogConf(logConfFile)
		if err != nil {
			return nil, err
		}
	}
	lc.Filepath = envCfg.GenDirAbsPath(envCfg.LogDir)

	driver, err := logs.OpenLog(lc)
	if err != nil {
		return nil, err
	}
	return logs.NewLogger(driver, common.BCEngineName)
}

func (t *XuperOSEngine) createChainCtx() (*common.ChainCtx, error) {
	envCfg := t.engCtx.EnvCfg
	engCfg := t.engCtx.EngCfg

	kvParam, err := engCfg.KVParam(envCfg.GenDataAbsPath(envCfg.StateDir))
	if err != nil {
		return nil, common.ErrOpenStateFailed.More("%v", err)
	}
	db, err := kvdb.CreateKVInstance(kvParam)
	if err != nil {
		return nil, common.ErrOpenStateFailed.More("%v", err)
	}

	stateCtx, err := sctx.NewStateCtx(engCfg.BCName, t.log, engCfg.StateCacheSize, engCfg.EventHistory)
	if err != nil {
		db.Close()
		return nil, common.ErrNewChainCtxFailed.More("%v", err)
	}
	st, err := state.NewState(stateCtx, db)
	if err != nil {
		db.Close()
		return nil, common.ErrOpenStateFailed.More("%v", err)
	}

	contractCfg, err := loadContractConf(envCfg)
	if err != nil {
		st.Close()
		return nil, common.ErrNewChainCtxFailed.More("%v", err)
	}
	mgr, err := contract.CreateManager("default", &contract.ManagerConfig{
		BCName:  engCfg.BCName,
		EnvConf: envCfg,
		XMState: st,
		Log:     t.log,
		Config:  contractCfg,
	})
	if err != nil {
		st.Close()
		return nil, common.ErrNewChainCtxFailed.More("%v", err)
	}

	chainCtx := &common.ChainCtx{}
	chainCtx.XLog = t.log
	chainCtx.Timer = timer.NewXTimer()
	chainCtx.EngCtx = t.engCtx
	chainCtx.BCName = engCfg.BCName
	chainCtx.State = st
	chainCtx.Contract = mgr
	return chainCtx, nil
}

// contract.yaml 可选
func loadContractConf(envCfg *xconf.EnvConf) (*contract.ContractConfig, error) {
	fname := envCfg.GenConfFilePath(manager.ContractConfigName)
	if !utils.FileIsExist(fname) {
		return contract.DefaultContractConfig(), nil
	}
	return manager.LoadConfig(fname)
}

// 注册内置合约
func (t *XuperOSEngine) registerContracts() error {
	tokenCtx, err := xtoken.NewXTokenCtx(t.chainCtx)
	if err != nil {
		return common.ErrNewChainCtxFailed.More("%v", err)
	}
	registry := t.chainCtx.Contract.GetKernRegistry()

	xtoken.NewContract(tokenCtx).Register(registry, xtoken.XTokenContract)
	blacklist.NewContract(access.NewAccessControl(), t.log).Register(registry, blacklist.BlacklistContract)
	rescue.NewContract(access.NewAccessControl(), xtoken.NewCallTransferer(), t.log).
		Register(registry, rescue.RescueContract)
	ctoken.NewContract(tokenCtx).Register(registry, ctoken.CTokenContract)

	t.log.Trace("register kernel contracts succ", "contracts", fmt.Sprint(ContractNames()))
	return nil
}

// ContractNames 引擎内置的合约名
func ContractNames() []string {
	return []string{
		xtoken.XTokenContract,
		blacklist.BlacklistContract,
		rescue.RescueContract,
		ctoken.CTokenContract,
	}
}
