package sandbox

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/ledger"
)

// BucketSeperator separator between bucket and raw key
const BucketSeperator = "/"

// DelFlag delete flag
const DelFlag = "\x00"

func makeRawKey(bucket string, key []byte) []byte {
	k := append([]byte(bucket), []byte(BucketSeperator)...)
	return append(k, key...)
}

func parseRawKey(rawKey []byte) (string, []byte, error) {
	idx := bytes.Index(rawKey, []byte(BucketSeperator))
	if idx < 0 {
		return "", nil, fmt.Errorf("parseRawKey failed, invalid raw key:%s", string(rawKey))
	}
	bucket := string(rawKey[:idx])
	key := rawKey[idx+1:]
	return bucket, key, nil
}

// IsEmptyVersionedData check if VersionedData is empty
func IsEmptyVersionedData(vd *ledger.VersionedData) bool {
	return vd == nil || (vd.RefTxid == nil && vd.RefOffset == 0)
}

func IsDelFlag(value []byte) bool {
	return bytes.Equal([]byte(DelFlag), value)
}

// IsNotFound 未写入或已被删除的key都视为不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrHasDel)
}
