package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Bridge logging methods

// LogBridgeCall logs a round-trip to the order backend
func (l *Logger) LogBridgeCall(ctx context.Context, method string, duration time.Duration, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"Bridge Call Error",
			slog.String("rpc", method),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
	} else {
		l.Logger.DebugContext(ctx,
			"Bridge Call",
			slog.String("rpc", method),
			slog.Duration("duration", duration),
		)
	}
}

// Business logic logging methods

// LogOrderCreated logs when the backend accepts a cart checkout
func (l *Logger) LogOrderCreated(ctx context.Context, orderID int64, orderNo, serviceType string) {
	l.Logger.InfoContext(ctx,
		"Order Created",
		slog.Int64("order_id", orderID),
		slog.String("order_no", orderNo),
		slog.String("service_type", serviceType),
	)
}

// LogOrderCancelled logs when an order is cancelled (explicitly or by timeout)
func (l *Logger) LogOrderCancelled(ctx context.Context, orderID int64, reason string) {
	l.Logger.InfoContext(ctx,
		"Order Cancelled",
		slog.Int64("order_id", orderID),
		slog.String("reason", reason),
	)
}

// LogSessionReset logs a forced reset back to the splash screen
func (l *Logger) LogSessionReset(ctx context.Context, reason string) {
	l.Logger.InfoContext(ctx,
		"Session Reset",
		slog.String("reason", reason),
	)
}

// LogHeartbeatLost logs a heartbeat that reported a dead backend session
func (l *Logger) LogHeartbeatLost(ctx context.Context, status string, err error) {
	attrs := []any{slog.String("session_status", status)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Logger.WarnContext(ctx, "Heartbeat Lost", attrs...)
}

// LogReceiptPrinted logs the outcome of a print attempt
func (l *Logger) LogReceiptPrinted(ctx context.Context, orderNo string, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"Receipt Print Failed",
			slog.String("order_no", orderNo),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.InfoContext(ctx,
		"Receipt Printed",
		slog.String("order_no", orderNo),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
