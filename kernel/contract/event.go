package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/ledger"
)

var (
	AddressType = mustNewType("address")
	Bytes32Type = mustNewType("bytes32")
	Uint256Type = mustNewType("uint256")
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// Indexed returns an indexed event argument
func Indexed(name string, typ abi.Type) abi.Argument {
	return abi.Argument{Name: name, Type: typ, Indexed: true}
}

// NonIndexed returns an event argument packed into the event data
func NonIndexed(name string, typ abi.Type) abi.Argument {
	return abi.Argument{Name: name, Type: typ}
}

// EventSpec 事件定义，用于按以太坊日志格式构造ContractEvent
type EventSpec struct {
	abi.Event
}

func NewEventSpec(name string, inputs ...abi.Argument) *EventSpec {
	return &EventSpec{
		Event: abi.NewEvent(name, name, false, abi.Arguments(inputs)),
	}
}

// Topic returns keccak256 of the canonical signature
func (s *EventSpec) Topic() common.Hash {
	return s.ID
}

// Build 构造事件，values按Inputs顺序给出
func (s *EventSpec) Build(contractAddr common.Address, values ...interface{}) (*ledger.ContractEvent, error) {
	if len(values) != len(s.Inputs) {
		return nil, fmt.Errorf("event %s expect %d args, got %d", s.Name, len(s.Inputs), len(values))
	}
	topics := []common.Hash{s.ID}
	var data []interface{}
	for i, input := range s.Inputs {
		if !input.Indexed {
			data = append(data, values[i])
			continue
		}
		topic, err := toTopic(values[i])
		if err != nil {
			return nil, fmt.Errorf("event %s arg %s: %v", s.Name, input.Name, err)
		}
		topics = append(topics, topic)
	}
	packed, err := s.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return nil, fmt.Errorf("event %s pack data failed: %v", s.Name, err)
	}
	return &ledger.ContractEvent{
		Contract: contractAddr,
		Name:     s.Name,
		Topics:   topics,
		Data:     packed,
	}, nil
}

// Emit builds the event and appends it to the invocation context
func (s *EventSpec) Emit(ctx KContext, values ...interface{}) error {
	event, err := s.Build(ctx.Address(), values...)
	if err != nil {
		return err
	}
	ctx.AddEvent(event)
	return nil
}

// Match reports whether event is an instance of s
func (s *EventSpec) Match(event *ledger.ContractEvent) bool {
	return event != nil && event.Signature() == s.ID
}

// UnpackData decodes the non-indexed arguments of event
func (s *EventSpec) UnpackData(event *ledger.ContractEvent) ([]interface{}, error) {
	if !s.Match(event) {
		return nil, fmt.Errorf("event %s signature mismatch", s.Name)
	}
	return s.Inputs.NonIndexed().Unpack(event.Data)
}

func toTopic(v interface{}) (common.Hash, error) {
	switch val := v.(type) {
	case common.Address:
		return common.BytesToHash(val.Bytes()), nil
	case common.Hash:
		return val, nil
	case [32]byte:
		return common.Hash(val), nil
	case *big.Int:
		return common.BigToHash(val), nil
	default:
		return common.Hash{}, fmt.Errorf("unsupported indexed type %T", v)
	}
}
