// Package sandbox 为一次合约调用提供带读写集的状态缓存
package sandbox

const (
	// TransientBucket is the name of bucket that only appears in tx output set
	// but does't persists in xmodel
	TransientBucket = "$transient"
)
