package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/log"
	"github.com/hatlonely/datafaker/schema"
)

// WatcherOptions Watcher 构造选项
type WatcherOptions struct {
	// FilePath 配置文件路径
	FilePath string `cfg:"filePath" validate:"required"`

	// Logger 日志记录器，为空时使用默认 Logger
	Logger log.Logger `cfg:"-"`
}

// Listener 配置变更回调，每次加载到新的列配置时被调用
type Listener func(configs []*schema.ColumnConfig) error

// Watcher 监听配置文件变化，变化时重新加载并通知使用者
// 外部编辑器改写配置文件之后，生成侧通过它拿到最新的表模式输入
type Watcher struct {
	filePath string

	done chan struct{}
	wg   sync.WaitGroup

	logger log.Logger
}

// NewWatcherWithOptions 创建配置监听器
func NewWatcherWithOptions(options *WatcherOptions) (*Watcher, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if options.FilePath == "" {
		return nil, errors.New("filePath is required")
	}

	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithGroup("configWatcher").With("filePath", options.FilePath)

	return &Watcher{
		filePath: options.FilePath,
		done:     make(chan struct{}),
		logger:   logger,
	}, nil
}

// OnChange 先立即加载一次配置并回调，之后监听文件变化，每次变化重新加载并回调
// 初始加载或者初始回调失败时直接返回错误；监听过程中的失败只记录日志
func (w *Watcher) OnChange(listener Listener) error {
	configs, err := Load(w.filePath)
	if err != nil {
		return errors.WithMessage(err, "load config failed")
	}
	if err := listener(configs); err != nil {
		return errors.WithMessage(err, "listener failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "fsnotify.NewWatcher failed")
	}

	// 监听目录而不是文件本身，编辑器经常用重命名的方式落盘
	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		_ = watcher.Close()
		return errors.Wrap(err, "watcher.Add failed")
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Name != w.filePath {
					continue
				}

				configs, err := Load(w.filePath)
				if err != nil {
					w.logger.Warn("load config failed", "error", err)
					continue
				}
				if err := listener(configs); err != nil {
					w.logger.Warn("listener failed", "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", "error", err)
			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Close 停止监听并等待后台协程退出
func (w *Watcher) Close() error {
	close(w.done)
	w.wg.Wait()
	return nil
}
