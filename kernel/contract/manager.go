package contract

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/common/xconfig"
	"github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/lib/logs"
)

var (
	managerMutex sync.Mutex
	managers     = make(map[string]NewManagerFunc)
)

type NewManagerFunc func(cfg *ManagerConfig) (Manager, error)

type Manager interface {
	GetKernRegistry() KernRegistry
	// Deploy 创建一个合约实例，Initialize为true时在同一次调用中执行initialize
	Deploy(req *DeployRequest) (common.Address, *Receipt, error)
	// Invoke 执行并提交一次合约调用，失败时不产生任何状态修改
	Invoke(req *InvokeRequest) (*Receipt, error)
	// Query 执行只读调用，结果不提交
	Query(req *InvokeRequest) (*Response, error)
	// ContractOf 返回实例地址对应的合约名
	ContractOf(address common.Address) (string, error)
}

type ManagerConfig struct {
	BCName  string
	EnvConf *xconfig.EnvConf
	XMState ledger.XMState
	Log     logs.Logger

	Config *ContractConfig
}

type DeployRequest struct {
	TxID         []byte
	Initiator    common.Address
	ContractName string
	Initialize   bool
	Args         map[string][]byte
}

type InvokeRequest struct {
	TxID      []byte
	Initiator common.Address
	Contract  common.Address
	Method    string
	Args      map[string][]byte
}

func Register(name string, f NewManagerFunc) {
	managerMutex.Lock()
	defer managerMutex.Unlock()

	if _, exists := managers[name]; exists {
		panic(fmt.Sprintf("contract manager of type %s exists", name))
	}
	managers[name] = f
}

func CreateManager(name string, cfg *ManagerConfig) (Manager, error) {
	mgfunc, ok := managers[name]
	if !ok {
		return nil, fmt.Errorf("contract manager of type %s not exists", name)
	}
	return mgfunc(cfg)
}
