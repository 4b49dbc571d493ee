package logger

import (
	"go.uber.org/zap"
)

// L 全局日志器，Init 前为 no-op
var L = zap.NewNop()

// Init 初始化日志器，release 模式输出 JSON，其余输出开发格式
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	zap.ReplaceGlobals(l)
	return nil
}

// Sync 刷新缓冲日志
func Sync() {
	_ = L.Sync()
}
