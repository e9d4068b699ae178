// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stylesync/config"
	"stylesync/style"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	parser        *style.Parser
	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Parser returns the style parser configured from the engine section. It is
// created on first use and shared afterwards.
func (e *LocalEnv) Parser() *style.Parser {
	if e.parser != nil {
		return e.parser
	}
	var opts []style.ParserOption
	if e.Cfg != nil && len(e.Cfg.Engine.ScopePrefixes) > 0 {
		opts = append(opts, style.WithScopePrefixes(e.Cfg.Engine.ScopePrefixes...))
	}
	e.parser = style.NewParser(e.Log, opts...)
	return e.parser
}

// Origin returns the site origin gallery paths are resolved against.
func (e *LocalEnv) Origin() string {
	if e.Cfg == nil {
		return ""
	}
	return e.Cfg.Engine.Assets.Origin
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
