package vm

import (
	"context"

	"go.uber.org/zap"
)

// rollback unwinds partially acquired resources when a construction
// step fails. Each acquired resource pushes its release func; on
// failure the deferred Run releases them in reverse order, and on
// success Disarm hands ownership to the constructed object. Every
// resource is released exactly once, on exactly one of the two paths.
type rollback struct {
	log      *zap.Logger
	releases []func(context.Context) error
	disarmed bool
}

func (r *rollback) Add(release func(context.Context) error) {
	r.releases = append(r.releases, release)
}

func (r *rollback) Disarm() {
	r.disarmed = true
}

func (r *rollback) Run(ctx context.Context) {
	if r.disarmed {
		return
	}
	for i := len(r.releases) - 1; i >= 0; i-- {
		if err := r.releases[i](ctx); err != nil {
			r.log.Warn("release during load rollback", zap.Error(err))
		}
	}
}
