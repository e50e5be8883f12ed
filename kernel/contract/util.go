package contract

import (
	"fmt"
	"regexp"
)

var (
	contractNameRegex = regexp.MustCompile("^[a-zA-Z_]{1}[0-9a-zA-Z_.]+[0-9a-zA-Z_]$")
)

const (
	contractNameMaxSize = 32
	contractNameMinSize = 4
)

// ValidContractName return error when contractName is not a valid contract name.
func ValidContractName(contractName string) error {
	contractSize := len(contractName)
	if contractSize > contractNameMaxSize || contractSize < contractNameMinSize {
		return fmt.Errorf("contract name length expect [%d~%d], actual: %d", contractNameMinSize, contractNameMaxSize, contractSize)
	}
	if !contractNameRegex.MatchString(contractName) {
		return fmt.Errorf("contract name does not fit the rule of contract name")
	}
	return nil
}

// OK returns a successful response carrying body
func OK(body []byte) *Response {
	return &Response{
		Status: StatusOK,
		Body:   body,
	}
}

// BoolBody encodes a boolean query result
func BoolBody(v bool) []byte {
	if v {
		return []byte("true")
	}
	return []byte("false")
}

// InstanceBucket returns the state bucket owned by the executing contract instance
func InstanceBucket(ctx KContext) string {
	return ctx.Address().Hex()
}
