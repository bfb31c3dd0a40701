package internal

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"redsys/entity"
	"redsys/services"
)

var (
	outputMutex sync.Mutex
	output      zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
)

// SetLogFile directs loggers created afterwards to a size-rotated file.
func SetLogFile(file string, maxSize, maxBackups, maxAge int) {
	if file == "" {
		return
	}
	outputMutex.Lock()
	defer outputMutex.Unlock()
	output = zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	})
}

// Logger writes structured records through zap; warnings and errors are also
// stored in the database when one is set.
type Logger struct {
	category string
	database services.Database
	log      *zap.Logger
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if debug {
		level = zapcore.DebugLevel
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	outputMutex.Lock()
	core := zapcore.NewCore(encoder, output, level)
	outputMutex.Unlock()

	return newLoggerWithCore(category, core, database)
}

func newLoggerWithCore(category string, core zapcore.Core, database services.Database) *Logger {
	return &Logger{
		category: category,
		database: database,
		log:      zap.New(core).With(zap.String("category", category)),
	}
}

func (l *Logger) Debug(text string) {
	l.log.Debug(text)
}

func (l *Logger) Info(text string) {
	l.log.Info(text)
}

func (l *Logger) Warn(text string) {
	l.log.Warn(text)
	l.store("warn", text)
}

func (l *Logger) Error(text string, err error) {
	l.log.Error(text, zap.Error(err))
	if err != nil {
		text = text + ": " + err.Error()
	}
	l.store("error", text)
}

func (l *Logger) store(level string, text string) {
	if l.database == nil {
		return
	}
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(message); err != nil {
		l.log.Warn("write log message", zap.Error(err))
	}
}
