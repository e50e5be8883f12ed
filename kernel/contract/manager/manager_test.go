package manager_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/mock"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
)

const counterContract = "Counter"

var (
	alice = mock.Account(1)
	bob   = mock.Account(2)
)

func counterValue(ctx contract.KContext) (int, error) {
	v, err := ctx.Get(ctx.Address().Hex(), []byte("count"))
	if sandbox.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(v))
}

func incr(ctx contract.KContext) (*contract.Response, error) {
	n, err := counterValue(ctx)
	if err != nil {
		return nil, err
	}
	n++
	if err := ctx.Put(ctx.Address().Hex(), []byte("count"), []byte(strconv.Itoa(n))); err != nil {
		return nil, err
	}
	return contract.OK([]byte(strconv.Itoa(n))), nil
}

func registerCounter(r contract.KernRegistry) {
	r.RegisterKernMethod(counterContract, "initialize", func(ctx contract.KContext) (*contract.Response, error) {
		return contract.OK(nil), ctx.Put(ctx.Address().Hex(), []byte("count"), ctx.Args()["init"])
	})
	r.RegisterKernMethod(counterContract, "incr", incr)
	r.RegisterKernMethod(counterContract, "get", func(ctx contract.KContext) (*contract.Response, error) {
		n, err := counterValue(ctx)
		if err != nil {
			return nil, err
		}
		return contract.OK([]byte(strconv.Itoa(n))), nil
	})
	r.RegisterKernMethod(counterContract, "incrThenFail", func(ctx contract.KContext) (*contract.Response, error) {
		if _, err := incr(ctx); err != nil {
			return nil, err
		}
		return nil, errors.New("boom")
	})
	r.RegisterKernMethod(counterContract, "proxyIncr", func(ctx contract.KContext) (*contract.Response, error) {
		return ctx.Call(common.HexToAddress(string(ctx.Args()["target"])), "incr", nil)
	})
	r.RegisterKernMethod(counterContract, "whoami", func(ctx contract.KContext) (*contract.Response, error) {
		return contract.OK([]byte(ctx.Caller().Hex() + "," + ctx.Initiator().Hex())), nil
	})
	r.RegisterKernMethod(counterContract, "proxyWhoami", func(ctx contract.KContext) (*contract.Response, error) {
		return ctx.Call(common.HexToAddress(string(ctx.Args()["target"])), "whoami", nil)
	})
	r.RegisterKernMethod(counterContract, "reenter", func(ctx contract.KContext) (*contract.Response, error) {
		return ctx.Call(ctx.Address(), "incr", nil)
	})
}

func newHelper(cfg *contract.ContractConfig) *mock.TestHelper {
	th := mock.NewTestHelper(cfg)
	registerCounter(th.Registry())
	return th
}

func TestCreate(t *testing.T) {
	_, err := contract.CreateManager("default", &contract.ManagerConfig{
		BCName:  "xuper",
		XMState: mock.NewMemState(),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = contract.CreateManager("unknown", &contract.ManagerConfig{})
	if err == nil {
		t.Fatal("expect error for unknown manager")
	}
}

func TestDeploy(t *testing.T) {
	th := newHelper(nil)
	addr, receipt, err := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("5")})
	if err != nil {
		t.Fatal(err)
	}
	if addr != crypto.CreateAddress(alice, 0) {
		t.Fatalf("unexpected address %s", addr.Hex())
	}
	if len(receipt.TxID) == 0 {
		t.Fatal("expect generated txid")
	}
	name, err := th.Manager().ContractOf(addr)
	if err != nil || name != counterContract {
		t.Fatalf("contract of %s: %s %v", addr.Hex(), name, err)
	}

	addr2, _, err := th.Deploy(alice, counterContract, nil)
	if err != nil {
		t.Fatal(err)
	}
	if addr2 != crypto.CreateAddress(alice, 1) {
		t.Fatal("nonce not increased")
	}

	resp, err := th.Query(bob, addr, "get", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Body) != "5" {
		t.Fatalf("expect 5, got %s", resp.Body)
	}

	if _, _, err := th.Deploy(alice, "Unknown", nil); !errors.Is(err, contract.ErrContractNotFound) {
		t.Fatalf("expect ErrContractNotFound, got %v", err)
	}
	if _, _, err := th.Deploy(alice, "x", nil); err == nil {
		t.Fatal("expect invalid contract name")
	}
}

func TestInvokeAtomic(t *testing.T) {
	th := newHelper(nil)
	addr, _, err := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("0")})
	if err != nil {
		t.Fatal(err)
	}

	receipt, err := th.Invoke(alice, addr, "incr", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(receipt.Response.Body) != "1" {
		t.Fatalf("expect 1, got %s", receipt.Response.Body)
	}

	if _, err := th.Invoke(alice, addr, "incrThenFail", nil); err == nil {
		t.Fatal("expect error")
	}
	resp, err := th.Query(alice, addr, "get", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Body) != "1" {
		t.Fatalf("failed invocation must not change state, got %s", resp.Body)
	}

	// Query 不提交
	if _, err := th.Query(alice, addr, "incr", nil); err != nil {
		t.Fatal(err)
	}
	resp, _ = th.Query(alice, addr, "get", nil)
	if string(resp.Body) != "1" {
		t.Fatalf("query must not commit, got %s", resp.Body)
	}

	if _, err := th.Invoke(alice, addr, "missing", nil); !errors.Is(err, contract.ErrMethodNotFound) {
		t.Fatalf("expect ErrMethodNotFound, got %v", err)
	}
	if _, err := th.Invoke(alice, mock.Account(99), "incr", nil); !errors.Is(err, contract.ErrContractNotFound) {
		t.Fatalf("expect ErrContractNotFound, got %v", err)
	}
}

func TestTxDuplicate(t *testing.T) {
	th := newHelper(nil)
	addr, _, err := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("0")})
	if err != nil {
		t.Fatal(err)
	}
	req := &contract.InvokeRequest{
		TxID:      []byte("tx1"),
		Initiator: alice,
		Contract:  addr,
		Method:    "incr",
	}
	if _, err := th.Manager().Invoke(req); err != nil {
		t.Fatal(err)
	}
	if _, err := th.Manager().Invoke(req); !errors.Is(err, contract.ErrTxDuplicate) {
		t.Fatalf("expect ErrTxDuplicate, got %v", err)
	}
}

func TestCrossContractCall(t *testing.T) {
	th := newHelper(nil)
	a, _, _ := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("0")})
	b, _, _ := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("10")})

	receipt, err := th.Invoke(bob, a, "proxyIncr", map[string][]byte{"target": []byte(b.Hex())})
	if err != nil {
		t.Fatal(err)
	}
	if string(receipt.Response.Body) != "11" {
		t.Fatalf("expect 11, got %s", receipt.Response.Body)
	}

	receipt, err = th.Invoke(bob, a, "proxyWhoami", map[string][]byte{"target": []byte(b.Hex())})
	if err != nil {
		t.Fatal(err)
	}
	if string(receipt.Response.Body) != a.Hex()+","+bob.Hex() {
		t.Fatalf("unexpected caller %s", receipt.Response.Body)
	}

	if _, err := th.Invoke(bob, a, "reenter", nil); !errors.Is(err, contract.ErrRecursiveCall) {
		t.Fatalf("expect ErrRecursiveCall, got %v", err)
	}
}

func TestMethodFee(t *testing.T) {
	cfg := contract.DefaultContractConfig()
	cfg.MethodFees = map[string]int64{"counter:incr": 3}
	th := newHelper(cfg)
	a, _, _ := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("0")})
	b, _, _ := th.Deploy(alice, counterContract, map[string][]byte{"init": []byte("0")})

	receipt, err := th.Invoke(alice, a, "proxyIncr", map[string][]byte{"target": []byte(b.Hex())})
	if err != nil {
		t.Fatal(err)
	}
	if receipt.ResourceUsed.XFee != 3 {
		t.Fatalf("expect fee 3, got %d", receipt.ResourceUsed.XFee)
	}

	cfg.ResourceLimits.XFee = 2
	if _, err := th.Invoke(alice, a, "incr", nil); !errors.Is(err, contract.ErrLimitExceeded) {
		t.Fatalf("expect ErrLimitExceeded, got %v", err)
	}
}

func TestShortcut(t *testing.T) {
	th := newHelper(nil)
	th.Registry().RegisterShortcut("count", counterContract, "get")
	if _, err := th.Registry().GetKernMethod("", "count"); err != nil {
		t.Fatal(err)
	}
	if _, err := th.Registry().GetKernMethod("", "nothing"); !errors.Is(err, contract.ErrMethodNotFound) {
		t.Fatalf("expect ErrMethodNotFound, got %v", err)
	}
}
