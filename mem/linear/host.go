package linear

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/mem"
)

// Config holds configuration for host creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// Tag classifies guest memory in the ledger.
	Tag mem.Tag
}

// DefaultTag classifies guest memory when no Config is given.
const DefaultTag = mem.TagJob

// Host runs sandboxed guest modules whose linear memory is charged to a
// ledger.
type Host struct {
	runtime wazero.Runtime
	ledger  *mem.Ledger
	tag     mem.Tag
}

// NewHost creates a host charging l. A nil ledger means mem.Default(); a nil
// cfg means no memory limit and DefaultTag.
func NewHost(ctx context.Context, l *mem.Ledger, cfg *Config) *Host {
	if l == nil {
		l = mem.Default()
	}
	runtimeCfg := wazero.NewRuntimeConfig()
	tag := DefaultTag

	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		tag = cfg.Tag
	}

	return &Host{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		ledger:  l,
		tag:     tag,
	}
}

// Instantiate compiles and instantiates a core module under name. Its
// memory is charged to the host's ledger until the module is closed.
func (h *Host) Instantiate(ctx context.Context, wasmBytes []byte, name string) (api.Module, error) {
	ctx = WithLedger(ctx, h.ledger, h.tag)

	compiled, err := h.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "compile failed")
	}

	mod, err := h.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", name, err)
	}

	Logger().Debug("guest instantiated",
		zap.String("module", name),
		zap.Stringer("tag", h.tag),
		zap.Uint64("charged", h.ledger.TaggedAllocation(h.tag)),
	)
	return mod, nil
}

// Close closes every module and the runtime, releasing guest memory.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
