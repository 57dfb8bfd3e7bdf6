package types

import "errors"

var (
	// ErrDataLoad 仿真数据无法分类或枚举，终止引擎初始化
	ErrDataLoad = errors.New("仿真数据加载失败")
	// ErrExpression 表达式求值失败，可恢复
	ErrExpression = errors.New("表达式错误")
	// ErrConfigIO 配置读写失败，回退默认配置
	ErrConfigIO = errors.New("配置读写失败")
)
