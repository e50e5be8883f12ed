package blacklist_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/contract/mock"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/blacklist"
	"github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
	"github.com/xuperchain/xcontrol/lib/logs"
)

var (
	deployer    = mock.Account(1)
	blacklister = mock.Account(2)
	user        = mock.Account(3)
)

type suite struct {
	th   *mock.TestHelper
	addr common.Address
	bl   *blacklist.Contract
}

func newSuite(t *testing.T) *suite {
	th := mock.NewTestHelper(nil)
	bl := blacklist.NewContract(access.NewAccessControl(), logs.NewDiscardLogger())
	bl.Register(th.Registry(), blacklist.BlacklistContract)

	reg := th.Registry()
	reg.RegisterKernMethod(blacklist.BlacklistContract, "callParentInit", func(ctx contract.KContext) (*contract.Response, error) {
		return contract.OK(nil), bl.Init(ctx)
	})
	reg.RegisterKernMethod(blacklist.BlacklistContract, "callParentInitUnchained", func(ctx contract.KContext) (*contract.Response, error) {
		return contract.OK(nil), bl.InitUnchained(ctx)
	})
	reg.RegisterKernMethod(blacklist.BlacklistContract, "guarded", bl.NotBlacklisted(func(ctx contract.KContext) (*contract.Response, error) {
		if err := ctx.Put(contract.InstanceBucket(ctx), []byte("guarded"), []byte("done")); err != nil {
			return nil, err
		}
		return contract.OK([]byte("succeeded")), nil
	}))

	addr, _, err := th.Deploy(deployer, blacklist.BlacklistContract, nil)
	require.NoError(t, err)
	return &suite{th: th, addr: addr, bl: bl}
}

func (s *suite) invoke(from common.Address, method string, args map[string][]byte) (*contract.Receipt, error) {
	return s.th.Invoke(from, s.addr, method, args)
}

func (s *suite) query(t *testing.T, method string, args map[string][]byte) string {
	resp, err := s.th.Query(user, s.addr, method, args)
	require.NoError(t, err)
	return string(resp.Body)
}

func (s *suite) isBlacklisted(t *testing.T, account common.Address) bool {
	return s.query(t, blacklist.IsBlacklistedMethod, accountArgs(account)) == "true"
}

func (s *suite) grantBlacklister(t *testing.T) {
	args := map[string][]byte{
		"role":    []byte(blacklist.BlacklisterRole.Hex()),
		"account": []byte(blacklister.Hex()),
	}
	_, err := s.invoke(deployer, "grantRole", args)
	require.NoError(t, err)
}

func accountArgs(account common.Address) map[string][]byte {
	return map[string][]byte{"account": []byte(account.Hex())}
}

func missingRole(account common.Address, role access.Role) string {
	return "AccessControl: account " + strings.ToLower(account.Hex()) + " is missing role " + role.Hex()
}

func countEvents(events []*ledger.ContractEvent, spec *contract.EventSpec, account common.Address) int {
	n := 0
	for _, e := range events {
		if spec.Match(e) && len(e.Topics) == 2 && e.Topics[1] == common.BytesToHash(account.Bytes()) {
			n++
		}
	}
	return n
}

func TestRoleConstants(t *testing.T) {
	require.Equal(t, "0x98db8a220cd0f09badce9f22d0ba7e93edb3d404448cc3560d391ab096ad16e9", blacklist.BlacklisterRole.Hex())

	s := newSuite(t)
	require.Equal(t, access.OwnerRole.Hex(), s.query(t, blacklist.OwnerRoleMethod, nil))
	require.Equal(t, blacklist.BlacklisterRole.Hex(), s.query(t, blacklist.BlacklisterRoleMethod, nil))
}

func TestInitialConfiguration(t *testing.T) {
	s := newSuite(t)
	roleArgs := func(role access.Role, account common.Address) map[string][]byte {
		return map[string][]byte{"role": []byte(role.Hex()), "account": []byte(account.Hex())}
	}

	require.Equal(t, common.Hash{}.Hex(), s.query(t, "getRoleAdmin", roleArgs(access.OwnerRole, deployer)))
	require.Equal(t, access.OwnerRole.Hex(), s.query(t, "getRoleAdmin", roleArgs(blacklist.BlacklisterRole, deployer)))
	require.Equal(t, "true", s.query(t, "hasRole", roleArgs(access.OwnerRole, deployer)))
	require.Equal(t, "false", s.query(t, "hasRole", roleArgs(blacklist.BlacklisterRole, deployer)))

	for _, account := range []common.Address{deployer, blacklister, user, {}} {
		require.False(t, s.isBlacklisted(t, account))
	}
}

func TestInitializeOnce(t *testing.T) {
	s := newSuite(t)
	_, err := s.invoke(deployer, "initialize", nil)
	require.EqualError(t, err, "Initializable: contract is already initialized")
	for _, caller := range []common.Address{blacklister, user} {
		_, err = s.invoke(caller, "initialize", nil)
		require.True(t, errors.Is(err, initializable.ErrAlreadyInitialized))
	}

	_, err = s.invoke(deployer, "callParentInit", nil)
	require.EqualError(t, err, "Initializable: contract is not initializing")
	_, err = s.invoke(deployer, "callParentInitUnchained", nil)
	require.EqualError(t, err, "Initializable: contract is not initializing")
	require.True(t, errors.Is(err, initializable.ErrNotInitializing))
}

func TestBlacklist(t *testing.T) {
	s := newSuite(t)
	s.grantBlacklister(t)

	_, err := s.invoke(deployer, blacklist.BlacklistMethod, accountArgs(deployer))
	require.EqualError(t, err, missingRole(deployer, blacklist.BlacklisterRole))
	require.True(t, errors.Is(err, access.ErrMissingRole))
	require.False(t, s.isBlacklisted(t, deployer))

	receipt, err := s.invoke(blacklister, blacklist.BlacklistMethod, accountArgs(user))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	require.Equal(t, 1, countEvents(receipt.Events, blacklist.BlacklistedEvent, user))
	require.Equal(t, s.addr, receipt.Events[0].Contract)
	require.True(t, s.isBlacklisted(t, user))

	receipt, err = s.invoke(blacklister, blacklist.BlacklistMethod, accountArgs(user))
	require.NoError(t, err)
	require.Empty(t, receipt.Events)
	require.True(t, s.isBlacklisted(t, user))
}

func TestUnBlacklist(t *testing.T) {
	s := newSuite(t)
	s.grantBlacklister(t)
	_, err := s.invoke(blacklister, blacklist.BlacklistMethod, accountArgs(user))
	require.NoError(t, err)

	_, err = s.invoke(deployer, blacklist.UnBlacklistMethod, accountArgs(user))
	require.EqualError(t, err, missingRole(deployer, blacklist.BlacklisterRole))
	require.True(t, s.isBlacklisted(t, user))

	receipt, err := s.invoke(blacklister, blacklist.UnBlacklistMethod, accountArgs(user))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	require.Equal(t, 1, countEvents(receipt.Events, blacklist.UnBlacklistedEvent, user))
	require.False(t, s.isBlacklisted(t, user))

	receipt, err = s.invoke(blacklister, blacklist.UnBlacklistMethod, accountArgs(user))
	require.NoError(t, err)
	require.Empty(t, receipt.Events)
}

func TestSelfBlacklist(t *testing.T) {
	s := newSuite(t)
	receipt, err := s.invoke(blacklister, blacklist.SelfBlacklistMethod, nil)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 2)
	require.True(t, blacklist.BlacklistedEvent.Match(receipt.Events[0]))
	require.True(t, blacklist.SelfBlacklistedEvent.Match(receipt.Events[1]))
	require.Equal(t, 1, countEvents(receipt.Events, blacklist.SelfBlacklistedEvent, blacklister))
	require.True(t, s.isBlacklisted(t, blacklister))

	receipt, err = s.invoke(blacklister, blacklist.SelfBlacklistMethod, nil)
	require.NoError(t, err)
	require.Empty(t, receipt.Events)
}

func TestNotBlacklistedGuard(t *testing.T) {
	s := newSuite(t)
	s.grantBlacklister(t)
	_, err := s.invoke(blacklister, blacklist.BlacklistMethod, accountArgs(deployer))
	require.NoError(t, err)

	_, err = s.invoke(deployer, "guarded", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, blacklist.ErrBlacklistedAccount))
	var target *blacklist.BlacklistedAccountError
	require.True(t, errors.As(err, &target))
	require.Equal(t, deployer, target.Account)

	receipt, err := s.invoke(user, "guarded", nil)
	require.NoError(t, err)
	require.Equal(t, "succeeded", string(receipt.Response.Body))
}

func TestGuardHasNoSideEffects(t *testing.T) {
	ac := access.NewAccessControl()
	control := blacklist.NewControl(ac)
	self := mock.Account(100)
	ctx := mock.NewFakeKContext(user, self, nil)

	require.NoError(t, control.SelfBlacklist(ctx))
	called := false
	guarded := control.NotBlacklisted(func(ctx contract.KContext) (*contract.Response, error) {
		called = true
		return contract.OK(nil), nil
	})
	_, err := guarded(ctx)
	require.True(t, errors.Is(err, blacklist.ErrBlacklistedAccount))
	require.False(t, called)

	require.NoError(t, control.RequireNotBlacklisted(ctx, deployer))
	_, err = guarded(ctx.As(deployer, nil))
	require.NoError(t, err)
	require.True(t, called)
}
