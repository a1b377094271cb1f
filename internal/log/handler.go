package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// handler renders records as a level tag, the message, and a flat list of
// key=value pairs. It deliberately has no timestamps or colors: output ends
// up interleaved with test runner output, which supplies both.
type handler struct {
	W     io.Writer
	Level Level

	attrs string
	group string
}

var _ slog.Handler = (*handler)(nil)

func (h *handler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.Level
}

func (h *handler) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder

	lvl, err := rec.Level.MarshalText()
	if err != nil {
		return err
	}
	sb.Write(lvl)
	sb.WriteByte(' ')
	sb.WriteString(rec.Message)

	if len(h.attrs) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(h.attrs)
	}

	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.group, a)
		return true
	})

	sb.WriteByte('\n')
	_, err = io.WriteString(h.W, sb.String())
	return err
}

func appendAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := a.Key
		if len(group) > 0 {
			sub = group + "." + sub
		}
		for _, a := range a.Value.Group() {
			appendAttr(sb, sub, a)
		}
		return
	}

	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	if len(group) > 0 {
		sb.WriteString(group)
		sb.WriteByte('.')
	}
	sb.WriteString(a.Key)
	sb.WriteByte('=')

	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if strings.ContainsAny(s, " \"=") {
			s = strconv.Quote(s)
		}
		sb.WriteString(s)
	default:
		fmt.Fprintf(sb, "%v", a.Value.Any())
	}
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	var sb strings.Builder
	sb.WriteString(out.attrs)
	for _, a := range attrs {
		appendAttr(&sb, h.group, a)
	}
	out.attrs = strings.TrimSpace(sb.String())
	return &out
}

func (h *handler) WithGroup(name string) slog.Handler {
	out := *h
	if len(out.group) > 0 {
		out.group += "."
	}
	out.group += name
	return &out
}
