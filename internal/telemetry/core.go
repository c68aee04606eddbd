package telemetry

import (
	"go.uber.org/zap/zapcore"
)

// Core returns a zapcore.Core that captures interesting entries. It accepts
// every level so activity entries are seen even when the console logger is
// quieter than info.
func (t *Telemetry) Core() zapcore.Core {
	return &core{t: t}
}

type core struct {
	t      *Telemetry
	fields []zapcore.Field
}

func (c *core) Enabled(zapcore.Level) bool { return true }

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &core{t: c.t, fields: merged}
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.t.activity && !c.t.errors {
		return ce
	}
	return ce.AddCore(ent, c)
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	if ev, ok := c.t.event(ent, enc.Fields); ok {
		c.t.capture(ev)
	}
	return nil
}

func (c *core) Sync() error { return nil }

// event builds the event for ent, or reports false when the entry is not of
// interest.
func (t *Telemetry) event(ent zapcore.Entry, fields map[string]any) (Event, bool) {
	activity, isActivity := fields[ActivityField]
	_, isError := fields[ErrorField]

	var name string
	switch {
	case t.activity && isActivity:
		name = t.app + "::activity"
	case t.errors && isError:
		name = t.app + "::event"
	default:
		return Event{}, false
	}

	props := map[string]any{
		"name":    ent.Message,
		"$lib":    libName,
		"level":   ent.Level.String(),
		"module":  module(ent),
		"version": t.version,
	}
	if isActivity {
		props["$screen_name"] = activity
	}
	for k, v := range RedactSensitiveProperties(fields) {
		props[k] = v
	}

	return Event{
		Name:       name,
		DistinctID: t.userID,
		Properties: props,
		Timestamp:  ent.Time,
	}, true
}

func module(ent zapcore.Entry) string {
	if ent.LoggerName != "" {
		return ent.LoggerName
	}
	if ent.Caller.Defined && ent.Caller.Function != "" {
		return ent.Caller.Function
	}
	return "main"
}
