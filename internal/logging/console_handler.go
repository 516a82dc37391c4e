package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// shortRunIDLen is how much of a run UUID the console prefix shows.
const shortRunIDLen = 8

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\x1b[90m",
	slog.LevelInfo:  "\x1b[36m",
	slog.LevelWarn:  "\x1b[33m",
	slog.LevelError: "\x1b[31m",
}

const colorReset = "\x1b[0m"

// consoleHandler renders records as
//
//	2024-01-07 09:00:00 INFO  [1a2b3c4d audio/Trim] pipeline: trimming input=a.mp3
//
// The bracketed prefix appears only when run fields are present. The
// component field, when set, becomes the message prefix.
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Leveler
	fields    []field
	group     string
	addSource bool
	color     bool
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource, color bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: w, level: level, addSource: addSource, color: color}
}

// isTerminal reports whether w is an interactive terminal that should get
// ANSI colour. NO_COLOR disables colour regardless.
func isTerminal(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		next.fields = appendField(next.fields, next.group, a)
	}
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.group = joinKey(h.group, name)
	return next
}

func (h *consoleHandler) clone() *consoleHandler {
	next := *h
	next.fields = append([]field(nil), h.fields...)
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := append([]field(nil), h.fields...)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.group, a)
		return true
	})

	var runID, kind, step, component string
	rest := fields[:0]
	for _, f := range fields {
		switch f.key {
		case FieldRunID:
			runID = f.value.String()
		case FieldKind:
			kind = f.value.String()
		case FieldStep:
			step = f.value.String()
		case FieldComponent:
			if component == "" {
				component = f.value.String()
			}
		default:
			rest = append(rest, f)
		}
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.Local().Format(consoleTimeLayout))
	b.WriteByte(' ')
	b.WriteString(h.levelText(r.Level))
	b.WriteByte(' ')
	if prefix := runPrefix(runID, kind, step); prefix != "" {
		b.WriteString(prefix)
		b.WriteByte(' ')
	}
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	b.WriteString(strings.TrimSpace(r.Message))
	if h.addSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fmt.Fprintf(&b, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range rest {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(renderValue(f.value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *consoleHandler) levelText(level slog.Level) string {
	label := fmt.Sprintf("%-5s", levelName(level))
	if !h.color {
		return label
	}
	return levelColors[levelBucket(level)] + label + colorReset
}

func runPrefix(runID, kind, step string) string {
	if len(runID) > shortRunIDLen {
		runID = runID[:shortRunIDLen]
	}
	scope := kind
	if step != "" {
		if scope != "" {
			scope += "/"
		}
		scope += step
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{runID, scope} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func appendField(dst []field, group string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = joinKey(group, a.Key)
		}
		for _, child := range a.Value.Group() {
			dst = appendField(dst, prefix, child)
		}
		return dst
	}
	return append(dst, field{key: joinKey(group, a.Key), value: a.Value})
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	}
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func levelBucket(level slog.Level) slog.Level {
	switch {
	case level >= slog.LevelError:
		return slog.LevelError
	case level >= slog.LevelWarn:
		return slog.LevelWarn
	case level >= slog.LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func levelName(level slog.Level) string {
	return levelBucket(level).String()
}
