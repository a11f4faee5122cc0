package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志文件配置
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Verbose    bool
}

var (
	mu          sync.RWMutex
	console     *zap.SugaredLogger = newConsoleLogger(zapcore.InfoLevel)
	fileOnly    *zap.SugaredLogger
	rotator     *lumberjack.Logger
	logPath     string
	initialized bool
)

func consoleEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
		ConsoleSeparator: " ",
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func newConsoleLogger(level zapcore.Level) *zap.SugaredLogger {
	core := zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stdout), level)
	return zap.New(core).Sugar()
}

// InitLogger 初始化文件日志，控制台输出保持不变
func InitLogger(opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(dir, fmt.Sprintf("abi2sol_%s.log", timestamp))

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(opts.MaxSizeMB, 50),
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
		Compress:   opts.Compress,
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	fileEnc := zap.NewProductionEncoderConfig()
	fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(w), zapcore.DebugLevel)
	consoleCore := zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stdout), level)

	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		_ = rotator.Close()
	}
	rotator = w
	logPath = path
	console = zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	fileOnly = zap.New(fileCore, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	initialized = true

	fmt.Printf("📝 Log file created: %s\n", path)
	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// SetVerbose switches console debug output on or off before InitLogger.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	console = newConsoleLogger(level)
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = console.Sync()
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
	initialized = false
	fileOnly = nil
	console = newConsoleLogger(zapcore.InfoLevel)
}

// Path returns the current log file, empty before InitLogger.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func InfoFileOnly(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return
	}
	fileOnly.Infof(format, v...)
}

func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	console.Infof(format, v...)
}

func Debug(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	console.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	console.Warnf(format, v...)
}

func Error(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	console.Errorf(format, v...)
}
