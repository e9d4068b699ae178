package state

import (
	"context"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylesync/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log != nil {
		t.Error("Logger must not be set before configuration is loaded")
	}
}

func TestEnvFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond || uptime > time.Second {
		t.Errorf("Uptime() = %v", uptime)
	}
}

func TestLocalEnv_Parser(t *testing.T) {
	env := &LocalEnv{
		Cfg: &config.Config{Engine: config.EngineConfig{
			ScopePrefixes: []string{".grid"},
			Assets:        config.AssetsConfig{Origin: "https://cms.example.com"},
		}},
		Log: zaptest.NewLogger(t),
	}

	p := env.Parser()
	if !slices.Equal(p.ScopePrefixes(), []string{".grid"}) {
		t.Errorf("ScopePrefixes() = %q", p.ScopePrefixes())
	}
	if env.Parser() != p {
		t.Error("Parser() must be created once")
	}
	if env.Origin() != "https://cms.example.com" {
		t.Errorf("Origin() = %q", env.Origin())
	}

	bare := &LocalEnv{}
	if len(bare.Parser().ScopePrefixes()) == 0 {
		t.Error("default prefixes expected without configuration")
	}
	if bare.Origin() != "" {
		t.Error("no origin expected without configuration")
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}

	empty := &LocalEnv{}
	empty.RedirectStdLog()
	if empty.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	empty.RestoreStdLog()
}
