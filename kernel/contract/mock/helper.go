package mock

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	_ "github.com/xuperchain/xcontrol/kernel/contract/manager"
	"github.com/xuperchain/xcontrol/lib/logs"
)

// TestHelper 基于内存状态的合约执行环境，供各合约包测试使用
type TestHelper struct {
	state   *MemState
	manager contract.Manager
}

func NewTestHelper(cfg *contract.ContractConfig) *TestHelper {
	state := NewMemState()
	m, err := contract.CreateManager("default", &contract.ManagerConfig{
		BCName:  "xuper",
		XMState: state,
		Log:     logs.NewDiscardLogger(),
		Config:  cfg,
	})
	if err != nil {
		panic(err)
	}
	return &TestHelper{
		state:   state,
		manager: m,
	}
}

func (t *TestHelper) Manager() contract.Manager {
	return t.manager
}

func (t *TestHelper) Registry() contract.KernRegistry {
	return t.manager.GetKernRegistry()
}

func (t *TestHelper) State() *MemState {
	return t.state
}

// Deploy 部署并初始化一个合约实例
func (t *TestHelper) Deploy(initiator common.Address, contractName string, args map[string][]byte) (common.Address, *contract.Receipt, error) {
	return t.manager.Deploy(&contract.DeployRequest{
		Initiator:    initiator,
		ContractName: contractName,
		Initialize:   true,
		Args:         args,
	})
}

func (t *TestHelper) Invoke(initiator, address common.Address, method string, args map[string][]byte) (*contract.Receipt, error) {
	return t.manager.Invoke(&contract.InvokeRequest{
		Initiator: initiator,
		Contract:  address,
		Method:    method,
		Args:      args,
	})
}

func (t *TestHelper) Query(initiator, address common.Address, method string, args map[string][]byte) (*contract.Response, error) {
	return t.manager.Query(&contract.InvokeRequest{
		Initiator: initiator,
		Contract:  address,
		Method:    method,
		Args:      args,
	})
}

// Account 生成测试用的确定性地址
func Account(seed int64) common.Address {
	return common.BigToAddress(big.NewInt(seed))
}
