package harness

import (
	"github.com/mrz1836/taprun/pkg/hctx"
	"github.com/mrz1836/taprun/pkg/supervisor"
)

// DefaultSupervisorFactory wires the real supervisor.Supervisor into a
// SupervisorFactory, honoring ctx.CaptureStderr and propagating extraEnv
// (e.g. SOURCE/BUILD, see internal/runenv) to every spawned child.
func DefaultSupervisorFactory(ctx *hctx.Context, extraEnv []string) SupervisorFactory {
	return func() ChildSupervisor {
		return supervisor.New(
			supervisor.WithCaptureStderr(ctx.CaptureStderr),
			supervisor.WithEnv(extraEnv),
		)
	}
}
