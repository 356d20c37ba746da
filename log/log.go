package log

var defaultLogger Logger

func init() {
	// 创建默认的 SLog 实例，向终端输出 text 格式日志
	slog, err := NewSLogWithOptions(&SLogOptions{
		Level:  "info",
		Format: "text",
	})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger = slog
}

// Default 返回包级默认 Logger
func Default() Logger {
	return defaultLogger
}

// SetDefault 替换包级默认 Logger，传入 nil 时忽略
func SetDefault(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
