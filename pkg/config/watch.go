package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval 同一文件最后一次事件之后的静默时间，超过后才转发
const debounceInterval = 100 * time.Millisecond

// Watcher 监听关键帧文档的变化
//
// 只转发 .yaml / .yml / .reanim 文件的写入、创建、重命名和删除事件，
// 同一文件的连续事件会被合并：每次事件都重新计时，
// 静默 100ms 后才转发一次，保证转发时文件已写完（截断后再写入的编辑器会产生两次写事件）。
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	fired   chan string // 计时器到期的文件名，由 run 转发
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher 创建监听器并开始监听给定目录
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fired:   make(chan string),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听；Events 和 Errors 会在后台循环退出后关闭
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.doneCh)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsKeyframeFile(event.Name) {
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(debounceInterval)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(debounceInterval, func() {
				select {
				case w.fired <- name:
				case <-w.closeCh:
				}
			})
		case name := <-w.fired:
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsKeyframeFile 判断路径是否为可加载的关键帧文档
func IsKeyframeFile(path string) bool {
	return IsYAMLFile(path) || IsReanimFile(path)
}

// IsYAMLFile 判断路径是否为 YAML 关键帧文档
func IsYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsReanimFile 判断路径是否为 Reanim 动画文件
func IsReanimFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".reanim"
}
