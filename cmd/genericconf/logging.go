package genericconf

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/stopwaiter"
)

var activeFileLog *fileLogWriter
var activeFileLogMutex sync.Mutex

// fileLogWriter hands records to a goroutine that owns the rotating file.
// Records are dropped while the queue is full so logging never blocks a request.
type fileLogWriter struct {
	stopwaiter.StopWaiter
	queueMutex sync.RWMutex
	closed     bool
	queue      chan []byte
	file       *lumberjack.Logger
}

func newFileLogWriter(config *FileLoggingConfig, filename string) *fileLogWriter {
	w := &fileLogWriter{
		queue: make(chan []byte, config.BufSize),
		file: &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			LocalTime:  config.LocalTime,
			Compress:   config.Compress,
		},
	}
	w.Start(context.Background(), w)
	w.LaunchThread(w.drain)
	return w
}

// drain ends when the queue is closed, not when the context is cancelled,
// so records queued before close still reach the file
func (w *fileLogWriter) drain(_ context.Context) {
	for record := range w.queue {
		_, _ = w.file.Write(record)
	}
}

func (w *fileLogWriter) Write(p []byte) (int, error) {
	// the stream handler reuses its buffer
	record := make([]byte, len(p))
	copy(record, p)
	w.queueMutex.RLock()
	defer w.queueMutex.RUnlock()
	if w.closed {
		return len(p), nil
	}
	select {
	case w.queue <- record:
	default:
	}
	return len(p), nil
}

// close flushes queued records before closing the file
func (w *fileLogWriter) close() error {
	w.queueMutex.Lock()
	if w.closed {
		w.queueMutex.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.queueMutex.Unlock()
	w.StopAndWait()
	return w.file.Close()
}

// InitLog installs the root log handler, replacing any file sink from a previous call
func InitLog(logType string, logLevel string, fileLoggingConfig *FileLoggingConfig, pathResolver func(string) string) error {
	format, err := ParseLogType(logType)
	if err != nil {
		return fmt.Errorf("error parsing log type: %w", err)
	}
	level, err := ParseLogLevel(logLevel)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	activeFileLogMutex.Lock()
	defer activeFileLogMutex.Unlock()
	previous := activeFileLog
	activeFileLog = nil
	var output io.Writer = os.Stderr
	if fileLoggingConfig.Enable {
		activeFileLog = newFileLogWriter(fileLoggingConfig, pathResolver(fileLoggingConfig.File))
		output = io.MultiWriter(os.Stderr, activeFileLog)
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, format))
	glogger.Verbosity(level)
	log.Root().SetHandler(glogger)
	if previous != nil {
		if err := previous.close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}
	return nil
}
