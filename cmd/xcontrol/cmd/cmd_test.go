package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/blacklist"
)

const (
	owner = "0x00000000000000000000000000000000000000a1"
	alice = "0x00000000000000000000000000000000000000a2"
)

func newRootForTest() *cobra.Command {
	root := &cobra.Command{Use: "xcontrol", SilenceUsage: true, SilenceErrors: true}
	opts := BindGlobalFlags(root)
	root.AddCommand(GetVersionCmd().GetCmd())
	root.AddCommand(GetDeployCmd(opts).GetCmd())
	root.AddCommand(GetInvokeCmd(opts).GetCmd())
	root.AddCommand(GetQueryCmd(opts).GetCmd())
	for _, c := range GetBlacklistCmds(opts) {
		root.AddCommand(c.GetCmd())
	}
	root.AddCommand(GetRescueCmd(opts).GetCmd())
	root.AddCommand(GetRoleCmd(opts).GetCmd())
	root.AddCommand(GetTokenCmd(opts).GetCmd())
	root.AddCommand(GetEventsCmd(opts).GetCmd())
	return root
}

func writeEnv(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), os.ModePerm))
	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "conf", "engine.yaml"),
		[]byte("kvEngine: leveldb\nmemCache: 16MB\n"), 0644))
	envFile := filepath.Join(root, "conf", "env.yaml")
	require.NoError(t, ioutil.WriteFile(envFile, []byte("rootPath: "+root+"\n"), 0644))
	return envFile
}

func run(t *testing.T, env string, args ...string) (string, error) {
	root := newRootForTest()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs(append(args, "--conf", env))
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func mustRun(t *testing.T, env string, args ...string) string {
	out, err := run(t, env, args...)
	require.NoError(t, err, "%v", args)
	return out
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs([]string{"name=ctoken", "memo=a=b", "empty="})
	require.NoError(t, err)
	require.Equal(t, "ctoken", string(args["name"]))
	require.Equal(t, "a=b", string(args["memo"]))
	require.Empty(t, args["empty"])

	_, err = parseArgs([]string{"=x"})
	require.Error(t, err)
	_, err = parseArgs([]string{"novalue"})
	require.Error(t, err)
}

func TestRoleHex(t *testing.T) {
	require.Equal(t, blacklist.BlacklisterRole.Hex(), roleHex("BLACKLISTER_ROLE"))
	require.Equal(t, blacklist.BlacklisterRole.Hex(), roleHex(blacklist.BlacklisterRole.Hex()))
}

func TestBlacklistFlow(t *testing.T) {
	env := writeEnv(t)

	out := mustRun(t, env, "deploy", "CToken", "name=ctoken", "symbol=CTK", "initialSupply=100", "--from", owner)
	var deployed receiptView
	require.NoError(t, json.Unmarshal([]byte(out), &deployed))
	require.NotEmpty(t, deployed.Address)
	addr := deployed.Address

	_, err := run(t, env, "blacklist", addr, alice, "--from", owner)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is missing role "+blacklist.BlacklisterRole.Hex())

	mustRun(t, env, "role", "grant", addr, "BLACKLISTER_ROLE", owner, "--from", owner)
	require.Equal(t, "true", mustRun(t, env, "role", "has", addr, "BLACKLISTER_ROLE", owner))

	out = mustRun(t, env, "blacklist", addr, alice, "--from", owner)
	var receipt receiptView
	require.NoError(t, json.Unmarshal([]byte(out), &receipt))
	require.Len(t, receipt.Events, 1)
	require.Equal(t, "Blacklisted", receipt.Events[0].Name)

	require.Equal(t, "true", mustRun(t, env, "is-blacklisted", addr, alice))
	require.Equal(t, "false", mustRun(t, env, "is-blacklisted", addr, owner))
	require.Equal(t, "100", mustRun(t, env, "token", "balance", addr, owner))

	out = mustRun(t, env, "events", "-n", "1")
	var events []eventView
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	require.Equal(t, "Blacklisted", events[0].Name)
	require.Equal(t, receipt.TxID, events[0].TxID)

	_, err = run(t, env, "unblacklist", addr, alice)
	require.Error(t, err)
}
