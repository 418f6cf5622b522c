package logger

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/parcel"
)

// Entry represents a single decision log entry
type Entry struct {
	RequestID      string
	RemoteAddr     string
	Parcel         parcel.Parcel
	Signals        parcel.Signals
	Category       classifier.Category
	Reason         string
	Err            error
	ResponseTimeMs int64
}

// Logger writes one JSON object per classification decision
type Logger struct {
	zl   *zap.Logger
	file *os.File
}

// Config holds decision log configuration
type Config struct {
	Path   string `mapstructure:"path"`   // Append-only JSONL file, empty disables file output
	Stdout bool   `mapstructure:"stdout"` // Also write to stdout
}

// DefaultConfig returns default decision log configuration
func DefaultConfig() Config {
	return Config{
		Path:   "",
		Stdout: true,
	}
}

// New creates a new decision logger
func New(cfg Config) (*Logger, error) {
	var (
		syncers []zapcore.WriteSyncer
		file    *os.File
	)

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
		syncers = append(syncers, zapcore.AddSync(f))
	}
	if cfg.Stdout {
		syncers = append(syncers, zapcore.Lock(os.Stdout))
	}

	if len(syncers) == 0 {
		return &Logger{zl: zap.NewNop()}, nil
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(decisionEncoderConfig()),
		zapcore.NewMultiWriteSyncer(syncers...),
		zapcore.InfoLevel,
	)

	return &Logger{zl: zap.New(core), file: file}, nil
}

// NewFromZap wraps an existing zap logger, mainly for tests
func NewFromZap(zl *zap.Logger) *Logger {
	return &Logger{zl: zl}
}

func decisionEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "event"
	cfg.LevelKey = zapcore.OmitKey
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Log writes a decision entry
func (l *Logger) Log(entry Entry) {
	fields := []zap.Field{
		zap.String("request_id", entry.RequestID),
		zap.String("remote_addr", entry.RemoteAddr),
		zap.Float64("width_cm", entry.Parcel.WidthCm),
		zap.Float64("height_cm", entry.Parcel.HeightCm),
		zap.Float64("length_cm", entry.Parcel.LengthCm),
		zap.Float64("mass_kg", entry.Parcel.MassKg),
		zap.Int64("response_time_ms", entry.ResponseTimeMs),
	}

	if entry.Err != nil {
		l.zl.Info("rejected_input", append(fields, zap.String("error", entry.Err.Error()))...)
		return
	}

	l.zl.Info("classified", append(fields,
		zap.Float64("volume_cm3", roundVolume(entry.Signals.VolumeCm3)),
		zap.Bool("bulky", entry.Signals.Bulky),
		zap.Bool("heavy", entry.Signals.Heavy),
		zap.String("category", entry.Category.String()),
		zap.String("reason", entry.Reason),
	)...)
}

// roundVolume trims binary noise from the logged volume to 1 mm3.
// The bulky predicate is carried separately and never derived from it.
func roundVolume(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}

// LogResult logs a classifier.Result with additional metadata
func (l *Logger) LogResult(result classifier.Result, remoteAddr string, responseTime time.Duration) {
	l.Log(Entry{
		RequestID:      result.RequestID,
		RemoteAddr:     remoteAddr,
		Parcel:         result.Parcel,
		Signals:        result.Signals,
		Category:       result.Category,
		Reason:         result.Reason,
		ResponseTimeMs: responseTime.Milliseconds(),
	})
}

// LogRejection logs a parcel that failed validation
func (l *Logger) LogRejection(requestID string, p parcel.Parcel, err error, remoteAddr string, responseTime time.Duration) {
	l.Log(Entry{
		RequestID:      requestID,
		RemoteAddr:     remoteAddr,
		Parcel:         p,
		Err:            err,
		ResponseTimeMs: responseTime.Milliseconds(),
	})
}

// Close flushes and closes the logger
func (l *Logger) Close() error {
	_ = l.zl.Sync()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	if l.file != nil {
		return l.file.Name()
	}
	return ""
}
