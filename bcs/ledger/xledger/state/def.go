package state

// common definition for KV prefix
// 表名prefix拼key时需要和后缀区分开，统一使用两个字母
const (
	// 合约状态表，key为bucket/key，value为VersionedData
	ExtUtxoTablePrefix = "ZU"
	// 事件表，key为txid
	EventTablePrefix = "ZE"
	// 元数据表
	MetaTablePrefix = "ZM"
)

const (
	// BucketSeperator separator between bucket and raw key
	BucketSeperator = "/"
	// DelFlag delete flag
	DelFlag = "\x00"

	metaCommitCountKey = "commit_count"
)
