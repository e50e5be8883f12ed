package state

import (
	"bytes"
	"fmt"

	kledger "github.com/xuperchain/xcontrol/kernel/ledger"
)

// MakeVersion generate a version by txid and offset, version = txid_offset
func MakeVersion(txid []byte, offset int32) string {
	return fmt.Sprintf("%x_%d", txid, offset)
}

// GetVersion get VersionedData's version, if refTxid is nil, return ""
func GetVersion(vd *kledger.VersionedData) string {
	if vd == nil || vd.RefTxid == nil {
		return ""
	}
	return MakeVersion(vd.RefTxid, vd.RefOffset)
}

func makeRawKey(bucket string, key []byte) []byte {
	k := append([]byte(bucket), []byte(BucketSeperator)...)
	return append(k, key...)
}

func makeEmptyVersionedData(bucket string, key []byte) *kledger.VersionedData {
	return &kledger.VersionedData{
		PureData: &kledger.PureData{
			Bucket: bucket,
			Key:    key,
		},
	}
}

func isDelFlag(value []byte) bool {
	return bytes.Equal([]byte(DelFlag), value)
}
