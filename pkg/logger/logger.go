package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	logging "github.com/op/go-logging"
)

const format = `%{time:2006-01-02T15:04:05.000Z07:00} %{level:.4s} %{module}: %{message}`

// Logger is the reporting sink used by the pipeline and the service. Events are rendered as
// `<event> k1=v1 k2=v2` under a module name such as "encoder" or "metrics".
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Event(module, event string, fields ...Field)
	ErrorEvent(module, event string, fields ...Field)
}

// Field is one key=value pair of an event.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

type goLogger struct {
	name    string
	backend logging.LeveledBackend

	mu      sync.Mutex
	modules map[string]*logging.Logger
}

// New logs to stderr at INFO.
func New(name string) Logger {
	l, _ := NewWithWriter(name, os.Stderr, "INFO")
	return l
}

// NewWithWriter logs to w at the named go-logging level (DEBUG, INFO, WARNING, ERROR...).
func NewWithWriter(name string, w io.Writer, level string) (Logger, error) {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return nil, err
	}
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	return &goLogger{name: name, backend: leveled, modules: make(map[string]*logging.Logger)}, nil
}

func (l *goLogger) module(name string) *logging.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.modules[name]
	if !ok {
		m = logging.MustGetLogger(name)
		m.SetBackend(l.backend)
		l.modules[name] = m
	}
	return m
}

func (l *goLogger) Infof(format string, v ...any)  { l.module(l.name).Infof(format, v...) }
func (l *goLogger) Errorf(format string, v ...any) { l.module(l.name).Errorf(format, v...) }

func (l *goLogger) Event(module, event string, fields ...Field) {
	l.module(module).Info(Render(event, fields...))
}

func (l *goLogger) ErrorEvent(module, event string, fields ...Field) {
	l.module(module).Error(Render(event, fields...))
}

// Render formats an event line. Floats carry 15 fractional digits.
func Render(event string, fields ...Field) string {
	var sb strings.Builder
	sb.WriteString(event)
	for _, f := range fields {
		sb.WriteByte(' ')
		sb.WriteString(f.Key)
		sb.WriteByte('=')
		sb.WriteString(formatValue(f.Value))
	}
	return sb.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 15, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 15, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case string:
		if x == "" || strings.ContainsAny(x, " \t\n\"=") {
			return strconv.Quote(x)
		}
		return x
	case error:
		return strconv.Quote(x.Error())
	case bool:
		return strconv.FormatBool(x)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
