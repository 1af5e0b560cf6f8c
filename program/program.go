package program

import (
	"reflect"
	"sync"

	"github.com/gogpu/gputypes"
	"go.uber.org/zap"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/content"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/vertex"
)

// Program binds Go types to one reflected shader program. It is safe for
// concurrent use; results, including failures, are cached because the
// reflection never changes.
type Program struct {
	name      string
	reflector gpulayout.Reflector
	vertex    sync.Map // vertexKey -> vertexResult
	uniform   sync.Map // uniformKey -> matchResult
}

type vertexKey struct {
	format *vertex.Format
	step   vertex.StepMode
}

type vertexResult struct {
	layout gputypes.VertexBufferLayout
	err    error
}

type uniformKey struct {
	goType reflect.Type
	block  string
}

// matchResult boxes a possibly nil error for sync.Map.
type matchResult struct {
	err error
}

func New(name string, r gpulayout.Reflector) *Program {
	return &Program{name: name, reflector: r}
}

func (p *Program) Name() string {
	return p.name
}

func (p *Program) Reflector() gpulayout.Reflector {
	return p.reflector
}

// VertexLayout returns the vertex buffer layout of f, resolving automatic
// locations against the program's inputs.
func (p *Program) VertexLayout(f *vertex.Format, step vertex.StepMode) (gputypes.VertexBufferLayout, error) {
	if f == nil {
		return gputypes.VertexBufferLayout{}, errors.NilPointer(errors.PhaseResolve, nil, "*vertex.Format")
	}

	key := vertexKey{format: f, step: step}
	if cached, ok := p.vertex.Load(key); ok {
		r := cached.(vertexResult)
		return r.layout, r.err
	}

	l, err := f.BufferLayout(step, p.reflector)
	if err != nil {
		Logger().Debug("vertex layout failed",
			zap.String("program", p.name),
			zap.Stringer("type", f.Type()),
			zap.Error(err))
	} else {
		Logger().Debug("vertex layout resolved",
			zap.String("program", p.name),
			zap.Stringer("type", f.Type()),
			zap.Stringer("step", step),
			zap.Uint64("stride", l.ArrayStride))
	}

	p.vertex.Store(key, vertexResult{layout: l, err: err})
	return l, err
}

// MatchUniformBlock checks h against the uniform block named block.
func (p *Program) MatchUniformBlock(block string, h *layout.Host) error {
	if h == nil {
		return errors.NilPointer(errors.PhaseMatch, []string{block}, "*layout.Host")
	}

	key := uniformKey{goType: h.Type(), block: block}
	if cached, ok := p.uniform.Load(key); ok {
		return cached.(matchResult).err
	}

	err := p.matchUniformBlock(block, h)
	p.uniform.Store(key, matchResult{err: err})
	return err
}

func (p *Program) matchUniformBlock(block string, h *layout.Host) error {
	reflected, ok := p.reflector.UniformBlock(block)
	if !ok {
		return errors.NotFound(errors.PhaseMatch, "uniform block", block)
	}

	mismatch := h.Match(reflected, 0)
	if mismatch == nil {
		Logger().Debug("uniform block matched",
			zap.String("program", p.name),
			zap.String("block", block),
			zap.Stringer("type", h.Type()))
		return nil
	}

	Logger().Debug("uniform block mismatch",
		zap.String("program", p.name),
		zap.String("block", block),
		zap.Stringer("type", h.Type()),
		zap.String("detail", layout.Describe(mismatch)))

	return errors.New(errors.PhaseMatch, errors.KindLayoutMismatch).
		Path(append([]string{block}, layout.Path(mismatch)...)...).
		GoType(h.Type().String()).
		Cause(mismatch).
		Detail("uniform block %q does not match", block).
		Build()
}

// MatchStorage checks that the storage buffer name has exactly the content
// descriptor d.
func (p *Program) MatchStorage(name string, d content.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	reflected, ok := p.reflector.StorageBuffer(name)
	if !ok {
		return errors.NotFound(errors.PhaseMatch, "storage buffer", name)
	}
	if reflected != d {
		return errors.New(errors.PhaseMatch, errors.KindLayoutMismatch).
			Path(name).
			Detail("expected %s, obtained %s", d, reflected).
			Build()
	}
	return nil
}

// BindVertex returns the vertex buffer layout of T from the default
// registry.
func BindVertex[T any](p *Program, step vertex.StepMode) (gputypes.VertexBufferLayout, error) {
	f, err := vertex.FormatOf[T]()
	if err != nil {
		return gputypes.VertexBufferLayout{}, err
	}
	return p.VertexLayout(f, step)
}

// BindUniform checks T against the uniform block named block.
func BindUniform[T any](p *Program, block string) error {
	h, err := layout.HostOf[T]()
	if err != nil {
		return err
	}
	return p.MatchUniformBlock(block, h)
}

// BindStorage returns an adapter for a storage buffer with head H followed
// by a runtime array of E, after checking it against the program.
func BindStorage[H, E any](p *Program, name string) (*content.Adapter[H, E], error) {
	a, err := content.NewAdapter[H, E]()
	if err != nil {
		return nil, err
	}
	if err := p.MatchStorage(name, a.Descriptor()); err != nil {
		return nil, err
	}
	return a, nil
}
