package config

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/viper"

	"github.com/xuperchain/xcontrol/lib/storage/kvdb"
	"github.com/xuperchain/xcontrol/lib/utils"
)

const (
	DefaultBCName         = "xuper"
	DefaultMemCache       = "128MB"
	DefaultFileHandlers   = 1024
	DefaultStateCacheSize = 10000
	DefaultEventHistory   = 1024
)

type EngineConf struct {
	// 链名，用于日志和指标
	BCName string `yaml:"bcName,omitempty"`
	// kv引擎: leveldb | badger
	KVEngine string `yaml:"kvEngine,omitempty"`
	// 存储类型: single | memory
	StorageType string `yaml:"storageType,omitempty"`
	// kv内存缓存，支持 64MB、1GiB 等写法
	MemCache              string `yaml:"memCache,omitempty"`
	FileHandlersCacheSize int    `yaml:"fileHandlersCacheSize,omitempty"`
	// 状态读缓存的key数量
	StateCacheSize int `yaml:"stateCacheSize,omitempty"`
	// 内存中保留的最近事件数量
	EventHistory int `yaml:"eventHistory,omitempty"`
}

func LoadEngineConf(cfgFile string) (*EngineConf, error) {
	cfg := GetDefEngineConf()
	err := cfg.loadConf(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load engine config failed.err:%s", err)
	}

	return cfg, nil
}

func GetDefEngineConf() *EngineConf {
	return &EngineConf{
		BCName:                DefaultBCName,
		KVEngine:              kvdb.KVEngineTypeLDB,
		StorageType:           kvdb.StorageTypeSingle,
		MemCache:              DefaultMemCache,
		FileHandlersCacheSize: DefaultFileHandlers,
		StateCacheSize:        DefaultStateCacheSize,
		EventHistory:          DefaultEventHistory,
	}
}

// MemCacheMB 内存缓存大小，单位MB
func (t *EngineConf) MemCacheMB() (int, error) {
	size, err := units.RAMInBytes(t.MemCache)
	if err != nil {
		return 0, fmt.Errorf("invalid memCache %q: %v", t.MemCache, err)
	}
	if size < units.MiB {
		return 0, fmt.Errorf("memCache %q less than 1MB", t.MemCache)
	}
	return int(size / units.MiB), nil
}

// KVParam 生成kv实例参数，dbPath为存储目录
func (t *EngineConf) KVParam(dbPath string) (*kvdb.KVParameter, error) {
	mb, err := t.MemCacheMB()
	if err != nil {
		return nil, err
	}
	return &kvdb.KVParameter{
		DBPath:                dbPath,
		KVEngineType:          t.KVEngine,
		StorageType:           t.StorageType,
		MemCacheSize:          mb,
		FileHandlersCacheSize: t.FileHandlersCacheSize,
	}, nil
}

func (t *EngineConf) loadConf(cfgFile string) error {
	if cfgFile == "" || !utils.FileIsExist(cfgFile) {
		return fmt.Errorf("config file set error.path:%s", cfgFile)
	}

	viperObj := viper.New()
	viperObj.SetConfigFile(cfgFile)
	err := viperObj.ReadInConfig()
	if err != nil {
		return fmt.Errorf("read config failed.path:%s,err:%v", cfgFile, err)
	}

	if err = viperObj.Unmarshal(t); err != nil {
		return fmt.Errorf("unmatshal config failed.path:%s,err:%v", cfgFile, err)
	}

	return nil
}
