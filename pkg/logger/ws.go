package logger

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ReopenableWriteSyncer is a zap sink whose file can be reopened after logrotate moves it.
type ReopenableWriteSyncer struct {
	file string
	mu   sync.Mutex
	cur  atomic.Pointer[os.File]
}

func NewReopenableWriteSyncer(file string) (*ReopenableWriteSyncer, error) {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	ws := &ReopenableWriteSyncer{
		file: file,
	}
	if err := ws.Reload(); err != nil {
		return nil, err
	}
	return ws, nil
}

func (ws *ReopenableWriteSyncer) Reload() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	file, err := os.OpenFile(ws.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if old := ws.cur.Swap(file); old != nil {
		return old.Close()
	}
	return nil
}

func (ws *ReopenableWriteSyncer) Sync() error {
	return ws.cur.Load().Sync()
}

func (ws *ReopenableWriteSyncer) Close() error {
	return ws.cur.Load().Close()
}

func (ws *ReopenableWriteSyncer) Write(p []byte) (n int, err error) {
	return ws.cur.Load().Write(p)
}

// ReloadOnSignal reopens the log file every time one of sig is received, until stop is called.
func ReloadOnSignal(ws *ReopenableWriteSyncer, log *zap.Logger, sig ...os.Signal) (stop func()) {
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, sig...)
	go func() {
		for {
			select {
			case <-c:
				log.Info("received reload signal, reopening log file")
				if e := ws.Reload(); e != nil {
					log.Error("failed to reload log file", zap.Error(e))
				} else {
					log.Info("successfully reloaded log file")
				}
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(c)
			close(done)
		})
	}
}
