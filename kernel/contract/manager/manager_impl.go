package manager

import (
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	xctx "github.com/xuperchain/xcontrol/kernel/common/xcontext"
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
	"github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/lib/logs"
	"github.com/xuperchain/xcontrol/lib/metrics"
	"github.com/xuperchain/xcontrol/lib/timer"
	"github.com/xuperchain/xcontrol/lib/utils"
)

const (
	// 合约实例地址 -> 合约名
	ContractBucket = "$contract"
	// 部署者地址 -> 已部署实例数
	NonceBucket = "$nonce"

	InitializeMethod = "initialize"
)

type managerImpl struct {
	bcName    string
	cfg       *contract.ContractConfig
	log       logs.Logger
	xmstate   ledger.XMState
	kregistry registryImpl

	// 所有写操作串行执行
	mutex sync.RWMutex
	txids *cache.Cache
}

func newManagerImpl(cfg *contract.ManagerConfig) (contract.Manager, error) {
	if cfg == nil || cfg.XMState == nil {
		return nil, errors.New("create contract manager failed because state is nil")
	}
	m := &managerImpl{
		bcName:  cfg.BCName,
		cfg:     cfg.Config,
		log:     cfg.Log,
		xmstate: cfg.XMState,
	}
	if m.cfg == nil {
		m.cfg = contract.DefaultContractConfig()
	}
	if m.log == nil {
		m.log = logs.NewDiscardLogger()
	}
	m.txids = cache.New(m.cfg.TxIDCacheExpired, 2*m.cfg.TxIDCacheExpired)
	return m, nil
}

func (m *managerImpl) GetKernRegistry() contract.KernRegistry {
	return &m.kregistry
}

func (m *managerImpl) Deploy(req *contract.DeployRequest) (common.Address, *contract.Receipt, error) {
	if err := contract.ValidContractName(req.ContractName); err != nil {
		return common.Address{}, nil, err
	}
	if !m.kregistry.hasContract(req.ContractName) {
		return common.Address{}, nil, errors.Wrapf(contract.ErrContractNotFound, "kernel contract `%s'", req.ContractName)
	}

	m.lock("deploy")
	defer m.mutex.Unlock()

	txid, err := m.checkTxID(req.TxID)
	if err != nil {
		return common.Address{}, nil, err
	}
	opCtx, err := xctx.CreateComOpCtx(m.log, timer.NewXTimer())
	if err != nil {
		return common.Address{}, nil, err
	}

	state := sandbox.NewXModelCache(m.xmstate)
	nonce, err := readNonce(state, req.Initiator)
	if err != nil {
		return common.Address{}, nil, err
	}
	address := crypto.CreateAddress(req.Initiator, nonce)
	if err := state.Put(NonceBucket, req.Initiator.Bytes(), []byte(strconv.FormatUint(nonce+1, 10))); err != nil {
		return common.Address{}, nil, err
	}
	if err := state.Put(ContractBucket, address.Bytes(), []byte(req.ContractName)); err != nil {
		return common.Address{}, nil, err
	}

	inv := m.newInvocation(state, req.Initiator, opCtx.XLog)
	resp := contract.OK(address.Bytes())
	if req.Initialize {
		resp, err = m.execute(opCtx, inv, address, req.ContractName, InitializeMethod, req.Args)
		if err != nil {
			return common.Address{}, nil, err
		}
	}

	receipt, err := m.commit(opCtx, txid, inv, resp)
	if err != nil {
		return common.Address{}, nil, err
	}
	opCtx.XLog.Info("deploy contract succ", "txid", utils.F(txid), "contract", req.ContractName,
		"address", address.Hex(), "initiator", req.Initiator.Hex(), "timer", opCtx.GetTimer().Print())
	return address, receipt, nil
}

func (m *managerImpl) Invoke(req *contract.InvokeRequest) (*contract.Receipt, error) {
	m.lock("invoke")
	defer m.mutex.Unlock()

	txid, err := m.checkTxID(req.TxID)
	if err != nil {
		return nil, err
	}
	opCtx, err := xctx.CreateComOpCtx(m.log, timer.NewXTimer())
	if err != nil {
		return nil, err
	}

	state := sandbox.NewXModelCache(m.xmstate)
	contractName, err := contractOf(state, req.Contract)
	if err != nil {
		return nil, err
	}
	inv := m.newInvocation(state, req.Initiator, opCtx.XLog)
	resp, err := m.execute(opCtx, inv, req.Contract, contractName, req.Method, req.Args)
	if err != nil {
		opCtx.XLog.Warn("invoke contract failed", "txid", utils.F(txid), "contract", contractName,
			"method", req.Method, "initiator", req.Initiator.Hex(), "err", err)
		return nil, err
	}

	receipt, err := m.commit(opCtx, txid, inv, resp)
	if err != nil {
		return nil, err
	}
	opCtx.XLog.Info("invoke contract succ", "txid", utils.F(txid), "contract", contractName,
		"method", req.Method, "events", len(receipt.Events), "timer", opCtx.GetTimer().Print())
	return receipt, nil
}

func (m *managerImpl) Query(req *contract.InvokeRequest) (*contract.Response, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	opCtx, err := xctx.CreateComOpCtx(m.log, timer.NewXTimer())
	if err != nil {
		return nil, err
	}
	state := sandbox.NewXModelCache(m.xmstate)
	contractName, err := contractOf(state, req.Contract)
	if err != nil {
		return nil, err
	}
	inv := m.newInvocation(state, req.Initiator, opCtx.XLog)
	return m.execute(opCtx, inv, req.Contract, contractName, req.Method, req.Args)
}

func (m *managerImpl) ContractOf(address common.Address) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return contractOf(sandbox.NewXModelCache(m.xmstate), address)
}

func (m *managerImpl) execute(opCtx *xctx.ComOpCtx, inv *invocation, address common.Address,
	contractName, method string, args map[string][]byte) (*contract.Response, error) {
	begin := time.Now()
	resp, err := inv.call(inv.initiator, address, contractName, method, args)
	if err == nil && resp.HasError() {
		err = errors.Errorf("contract %s.%s failed: %s", contractName, method, resp.Message)
	}
	opCtx.GetTimer().Mark("execute")

	code := "OK"
	if err != nil {
		code = "InvokeError"
	}
	metrics.ContractInvokeCounter.WithLabelValues(m.bcName, contractName, method, code).Inc()
	metrics.ContractInvokeHistogram.WithLabelValues(m.bcName, contractName, method).Observe(time.Since(begin).Seconds())
	return resp, err
}

func (m *managerImpl) commit(opCtx *xctx.ComOpCtx, txid []byte, inv *invocation,
	resp *contract.Response) (*contract.Receipt, error) {
	rwset := inv.state.RWSet()
	events := inv.state.Events()
	if err := m.xmstate.Commit(txid, rwset.WSet, events); err != nil {
		return nil, errors.Wrap(err, "commit state failed")
	}
	opCtx.GetTimer().Mark("commit")
	m.txids.SetDefault(string(txid), true)

	return &contract.Receipt{
		TxID:         txid,
		Response:     resp,
		Events:       events,
		ResourceUsed: inv.used,
	}, nil
}

// checkTxID 未指定txid时生成一个
func (m *managerImpl) checkTxID(txid []byte) ([]byte, error) {
	if len(txid) == 0 {
		return utils.GenTxId(), nil
	}
	if _, ok := m.txids.Get(string(txid)); ok {
		return nil, errors.Wrapf(contract.ErrTxDuplicate, "txid %s", utils.F(txid))
	}
	return txid, nil
}

func (m *managerImpl) lock(op string) {
	m.mutex.Lock()
	metrics.LockCounter.WithLabelValues(m.bcName, op).Inc()
}

func contractOf(state contract.XMState, address common.Address) (string, error) {
	value, err := state.Get(ContractBucket, address.Bytes())
	if sandbox.IsNotFound(err) {
		return "", errors.Wrapf(contract.ErrContractNotFound, "address %s", address.Hex())
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func readNonce(state contract.XMState, initiator common.Address) (uint64, error) {
	value, err := state.Get(NonceBucket, initiator.Bytes())
	if sandbox.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(string(value), 10, 64)
}

func init() {
	contract.Register("default", newManagerImpl)
}
