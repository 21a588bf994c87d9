package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	log    *zap.Logger
	mu     sync.Mutex
	logBuf *bytes.Buffer
	Logs   []string
}

func New() *ZapLogger {
	return newWithLevel(zap.DebugLevel)
}

// NewWithLevel drops everything below level.
func NewWithLevel(level zapcore.Level) *ZapLogger {
	return newWithLevel(level)
}

// NewNop returns a logger that writes nothing.
func NewNop() *ZapLogger {
	return &ZapLogger{
		log:    zap.NewNop(),
		logBuf: &bytes.Buffer{},
	}
}

func newWithLevel(level zapcore.Level) *ZapLogger {
	z := &ZapLogger{logBuf: &bytes.Buffer{}}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	// solvers log from several goroutines at once
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(&lockedBuffer{z: z})), level)

	z.log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return z
}

type lockedBuffer struct {
	z *ZapLogger
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.z.mu.Lock()
	defer b.z.mu.Unlock()
	return b.z.logBuf.Write(p)
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colored aurora.Value
	switch level {
	case zapcore.DebugLevel:
		colored = aurora.Cyan(level.String())
	case zapcore.InfoLevel:
		colored = aurora.Green(level.String())
	case zapcore.WarnLevel:
		colored = aurora.Yellow(level.String())
	case zapcore.ErrorLevel:
		colored = aurora.Red(level.String())
	default:
		colored = aurora.Reset(level.String())
	}
	enc.AppendString(colored.String())
}

var ansiCode = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiCode.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]

		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}

		colorCode := input[match[2]:match[3]]
		if color, ok := colorMap[colorCode]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// Text returns everything logged so far, colour codes included.
func (z *ZapLogger) Text() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logBuf.String()
}

func (z *ZapLogger) UpdateLogs() {
	htmlLogs := ansiToHTML(z.Text())
	z.mu.Lock()
	z.Logs = []string{htmlLogs}
	z.mu.Unlock()
}

func (z *ZapLogger) ClearLogs() {
	z.mu.Lock()
	z.logBuf.Reset()
	z.Logs = nil
	z.mu.Unlock()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}
