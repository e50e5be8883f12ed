package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestArgs(t *testing.T) {
	role := crypto.Keccak256Hash([]byte("OWNER_ROLE"))
	args := map[string][]byte{
		"account": []byte("0xD1824C1050F55CA7E564243CE087706CACF1C687"),
		"xchain":  []byte("jSPJQSAR3NWoKcSFMxYGfcY8KVskvNMtm"),
		"role":    []byte(role.Hex()),
		"amount":  []byte("123"),
		"neg":     []byte("-1"),
		"short":   []byte("0x1234"),
	}

	addr, err := AddressArg(args, "account")
	if err != nil {
		t.Fatal(err)
	}
	xaddr, err := AddressArg(args, "xchain")
	if err != nil {
		t.Fatal(err)
	}
	if addr != xaddr || addr != common.HexToAddress("0xD1824C1050F55CA7E564243CE087706CACF1C687") {
		t.Fatalf("unexpected address %s %s", addr.Hex(), xaddr.Hex())
	}
	if _, err := AddressArg(args, "missing"); err == nil {
		t.Fatal("expect missing argument error")
	}

	h, err := HashArg(args, "role")
	if err != nil || h != role {
		t.Fatalf("hash arg: %s %v", h.Hex(), err)
	}
	if _, err := HashArg(args, "short"); err == nil {
		t.Fatal("expect length error")
	}

	amount, err := AmountArg(args, "amount")
	if err != nil || amount.Cmp(big.NewInt(123)) != 0 {
		t.Fatalf("amount arg: %v %v", amount, err)
	}
	if _, err := AmountArg(args, "neg"); err == nil {
		t.Fatal("expect negative amount error")
	}
}
