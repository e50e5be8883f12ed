package manager

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/contract"
)

type shortcut struct {
	OldMethod string
	Contract  string
	Method    string
}

type registryImpl struct {
	mutex     sync.RWMutex
	methods   map[string]map[string]contract.KernMethod
	shortcuts map[string]shortcut
}

func (r *registryImpl) RegisterKernMethod(ctract, method string, handler contract.KernMethod) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.methods == nil {
		r.methods = make(map[string]map[string]contract.KernMethod)
	}
	contractMap, ok := r.methods[ctract]
	if !ok {
		contractMap = make(map[string]contract.KernMethod)
		r.methods[ctract] = contractMap
	}
	if _, ok = contractMap[method]; ok {
		panic(fmt.Sprintf("kernel method `%s' for `%s' exists", method, ctract))
	}
	contractMap[method] = handler
}

// RegisterShortcut 注册一个不带合约名的方法别名
func (r *registryImpl) RegisterShortcut(oldmethod, ctract, method string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.shortcuts == nil {
		r.shortcuts = make(map[string]shortcut)
	}
	if _, ok := r.shortcuts[oldmethod]; ok {
		panic(fmt.Sprintf("kernel method shortcut for '%s' exists", oldmethod))
	}
	r.shortcuts[oldmethod] = shortcut{
		OldMethod: oldmethod,
		Contract:  ctract,
		Method:    method,
	}
}

func (r *registryImpl) GetKernMethod(ctract, method string) (contract.KernMethod, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if ctract == "" {
		sc, ok := r.shortcuts[method]
		if !ok {
			return nil, errors.Wrapf(contract.ErrMethodNotFound, "shortcut `%s'", method)
		}
		ctract, method = sc.Contract, sc.Method
	}
	contractMap, ok := r.methods[ctract]
	if !ok {
		return nil, errors.Wrapf(contract.ErrContractNotFound, "kernel contract `%s'", ctract)
	}
	handler, ok := contractMap[method]
	if !ok {
		return nil, errors.Wrapf(contract.ErrMethodNotFound, "`%s' of `%s'", method, ctract)
	}
	return handler, nil
}

func (r *registryImpl) hasContract(ctract string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.methods[ctract]
	return ok
}
