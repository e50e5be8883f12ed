package rescue_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/contract/mock"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/rescue"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/xtoken"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
	"github.com/xuperchain/xcontrol/lib/logs"
)

const tokenAmount = 123

var (
	deployer = mock.Account(1)
	rescuer  = mock.Account(2)
)

type fixture struct {
	th     *mock.TestHelper
	rescue common.Address
	token  common.Address
}

func deployAndConfigure(t *testing.T) *fixture {
	th := mock.NewTestHelper(nil)
	rescue.NewContract(access.NewAccessControl(), xtoken.NewCallTransferer(), logs.NewDiscardLogger()).
		Register(th.Registry(), rescue.RescueContract)
	tctx := &xtoken.Context{}
	tctx.XLog = logs.NewDiscardLogger()
	xtoken.NewContract(tctx).Register(th.Registry(), xtoken.XTokenContract)

	rescueAddr, _, err := th.Deploy(deployer, rescue.RescueContract, nil)
	require.NoError(t, err)
	tokenAddr, _, err := th.Deploy(deployer, xtoken.XTokenContract, map[string][]byte{
		"name":   []byte("mock"),
		"symbol": []byte("MCK"),
	})
	require.NoError(t, err)

	_, err = th.Invoke(deployer, tokenAddr, xtoken.Mint, map[string][]byte{
		"to":     []byte(rescueAddr.Hex()),
		"amount": []byte("123"),
	})
	require.NoError(t, err)
	_, err = th.Invoke(deployer, rescueAddr, "grantRole", map[string][]byte{
		"role":    []byte(rescue.RescuerRole.Hex()),
		"account": []byte(rescuer.Hex()),
	})
	require.NoError(t, err)
	return &fixture{th: th, rescue: rescueAddr, token: tokenAddr}
}

func (f *fixture) balance(t *testing.T, account common.Address) int64 {
	resp, err := f.th.Query(account, f.token, xtoken.BalanceOf, map[string][]byte{"account": []byte(account.Hex())})
	require.NoError(t, err)
	v, ok := new(big.Int).SetString(string(resp.Body), 10)
	require.True(t, ok)
	return v.Int64()
}

func (f *fixture) rescueArgs(to common.Address, amount string) map[string][]byte {
	return map[string][]byte{
		"token":  []byte(f.token.Hex()),
		"to":     []byte(to.Hex()),
		"amount": []byte(amount),
	}
}

func TestRescueERC20(t *testing.T) {
	f := deployAndConfigure(t)

	receipt, err := f.th.Invoke(rescuer, f.rescue, rescue.RescueERC20Method, f.rescueArgs(deployer, "123"))
	require.NoError(t, err)
	require.EqualValues(t, 0, f.balance(t, f.rescue))
	require.EqualValues(t, tokenAmount, f.balance(t, deployer))
	require.EqualValues(t, 0, f.balance(t, rescuer))

	// 只有token合约产生的Transfer事件
	require.Len(t, receipt.Events, 1)
	event := receipt.Events[0]
	require.True(t, xtoken.TransferEvent.Match(event))
	require.Equal(t, f.token, event.Contract)
	require.Equal(t, common.BytesToHash(f.rescue.Bytes()), event.Topics[1])
	require.Equal(t, common.BytesToHash(deployer.Bytes()), event.Topics[2])
	data, err := xtoken.TransferEvent.UnpackData(event)
	require.NoError(t, err)
	require.EqualValues(t, tokenAmount, data[0].(*big.Int).Int64())
}

func TestRescueWithoutRole(t *testing.T) {
	f := deployAndConfigure(t)

	_, err := f.th.Invoke(deployer, f.rescue, rescue.RescueERC20Method, f.rescueArgs(deployer, "123"))
	require.EqualError(t, err, "AccessControl: account "+strings.ToLower(deployer.Hex())+
		" is missing role 0xcf6f9f892731e14b8859835f2ff35575f447fb501f46243c4eb8bac19e31a050")
	require.True(t, errors.Is(err, access.ErrMissingRole))
	require.EqualValues(t, tokenAmount, f.balance(t, f.rescue))
	require.EqualValues(t, 0, f.balance(t, deployer))
}

func TestRescueTokenErrorPropagates(t *testing.T) {
	f := deployAndConfigure(t)

	_, err := f.th.Invoke(rescuer, f.rescue, rescue.RescueERC20Method, f.rescueArgs(deployer, "124"))
	require.True(t, errors.Is(err, xtoken.ErrTransferExceedsBalance))
	require.EqualValues(t, tokenAmount, f.balance(t, f.rescue))

	receipt, err := f.th.Invoke(rescuer, f.rescue, rescue.RescueERC20Method, f.rescueArgs(deployer, "0"))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	require.EqualValues(t, tokenAmount, f.balance(t, f.rescue))
}

func TestInitialConfiguration(t *testing.T) {
	f := deployAndConfigure(t)
	query := func(method string, role access.Role, account common.Address) string {
		resp, err := f.th.Query(deployer, f.rescue, method, map[string][]byte{
			"role":    []byte(role.Hex()),
			"account": []byte(account.Hex()),
		})
		require.NoError(t, err)
		return string(resp.Body)
	}
	require.Equal(t, common.Hash{}.Hex(), query("getRoleAdmin", access.OwnerRole, deployer))
	require.Equal(t, access.OwnerRole.Hex(), query("getRoleAdmin", rescue.RescuerRole, deployer))
	require.Equal(t, "true", query("hasRole", access.OwnerRole, deployer))
	require.Equal(t, "false", query("hasRole", rescue.RescuerRole, deployer))
	require.Equal(t, rescue.RescuerRole.Hex(), query(rescue.RescuerRoleMethod, common.Hash{}, deployer))

	_, err := f.th.Invoke(deployer, f.rescue, "initialize", nil)
	require.EqualError(t, err, "Initializable: contract is already initialized")
	for _, caller := range []common.Address{rescuer, mock.Account(7)} {
		_, err = f.th.Invoke(caller, f.rescue, "initialize", nil)
		require.True(t, errors.Is(err, initializable.ErrAlreadyInitialized))
	}
}

type fakeTransferer struct {
	calls int
}

func (f *fakeTransferer) SafeTransfer(ctx contract.KContext, token, to common.Address, amount *big.Int) error {
	f.calls++
	return nil
}

func TestInitOutsideInitializer(t *testing.T) {
	tr := &fakeTransferer{}
	control := rescue.NewControl(access.NewAccessControl(), tr)
	ctx := mock.NewFakeKContext(deployer, mock.Account(100), nil)

	require.EqualError(t, control.Init(ctx), "Initializable: contract is not initializing")
	require.EqualError(t, control.InitUnchained(ctx), "Initializable: contract is not initializing")

	err := control.RescueERC20(ctx, mock.Account(9), deployer, big.NewInt(1))
	require.True(t, errors.Is(err, access.ErrMissingRole))
	require.Zero(t, tr.calls)
}
