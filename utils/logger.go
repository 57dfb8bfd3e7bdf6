package utils

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace 刷新细节
const LevelTrace = slog.LevelDebug - 4

// levels 级别名称
var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LevelKnown 是否为可用的级别名称，空串视为 info
func LevelKnown(s string) bool {
	_, ok := levels[strings.ToLower(s)]
	return ok || s == ""
}

// ParseLevel 解析级别名称，未知为 info
func ParseLevel(s string) slog.Level {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// levelAttr 标注 TRACE
func levelAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// NewLogger 文本日志
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: levelAttr,
	}))
}

// Discard 空日志
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }
