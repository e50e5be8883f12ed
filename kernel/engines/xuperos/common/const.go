package common

// 引擎常量配置
const (
	// 引擎名
	BCEngineName = "xuperos"
)
