package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_WritesJSONWithService(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Service: "directory", Output: &buf})
	log.Info().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "hello" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["service"] != "directory" {
		t.Errorf("service = %v, want directory", entry["service"])
	}
	if _, ok := entry["caller"]; !ok {
		t.Error("caller field missing")
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("x")
	if first.Len() == 0 || second.Len() != 0 {
		t.Errorf("second Init should be ignored: first=%d second=%d", first.Len(), second.Len())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestCtx_PrefersContextLogger(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var global, scoped bytes.Buffer
	Init(Options{Output: &global})

	ctx := WithContext(context.Background(), zerolog.New(&scoped))
	Ctx(ctx).Info().Msg("scoped")
	Ctx(context.Background()).Info().Msg("global")

	if scoped.Len() == 0 {
		t.Error("context logger was not used")
	}
	if global.Len() == 0 {
		t.Error("process logger was not used as fallback")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
