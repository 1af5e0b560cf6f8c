package vertex

import (
	"github.com/gogpu/gputypes"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/typetag"
)

// StepMode selects whether a buffer advances per vertex or per instance.
type StepMode uint8

const (
	PerVertex StepMode = iota
	PerInstance
)

func (m StepMode) String() string {
	if m == PerInstance {
		return "instance"
	}
	return "vertex"
}

func (m StepMode) gpu() gputypes.VertexStepMode {
	if m == PerInstance {
		return gputypes.VertexStepModeInstance
	}
	return gputypes.VertexStepModeVertex
}

type formatKey struct {
	tag       typetag.Tag
	normalize bool
}

var vertexFormats = map[formatKey]gputypes.VertexFormat{
	{typetag.Float, false}: gputypes.VertexFormatFloat32,
	{typetag.Vec2, false}:  gputypes.VertexFormatFloat32x2,
	{typetag.Vec3, false}:  gputypes.VertexFormatFloat32x3,
	{typetag.Vec4, false}:  gputypes.VertexFormatFloat32x4,

	{typetag.Uint, false}:  gputypes.VertexFormatUint32,
	{typetag.UVec2, false}: gputypes.VertexFormatUint32x2,
	{typetag.UVec3, false}: gputypes.VertexFormatUint32x3,
	{typetag.UVec4, false}: gputypes.VertexFormatUint32x4,
	{typetag.Int, false}:   gputypes.VertexFormatSint32,
	{typetag.IVec2, false}: gputypes.VertexFormatSint32x2,
	{typetag.IVec3, false}: gputypes.VertexFormatSint32x3,
	{typetag.IVec4, false}: gputypes.VertexFormatSint32x4,

	{typetag.U16Vec2, false}: gputypes.VertexFormatUint16x2,
	{typetag.U16Vec4, false}: gputypes.VertexFormatUint16x4,
	{typetag.I16Vec2, false}: gputypes.VertexFormatSint16x2,
	{typetag.I16Vec4, false}: gputypes.VertexFormatSint16x4,
	{typetag.U16Vec2, true}:  gputypes.VertexFormatUnorm16x2,
	{typetag.U16Vec4, true}:  gputypes.VertexFormatUnorm16x4,
	{typetag.I16Vec2, true}:  gputypes.VertexFormatSnorm16x2,
	{typetag.I16Vec4, true}:  gputypes.VertexFormatSnorm16x4,

	{typetag.U8Vec2, false}: gputypes.VertexFormatUint8x2,
	{typetag.U8Vec4, false}: gputypes.VertexFormatUint8x4,
	{typetag.I8Vec2, false}: gputypes.VertexFormatSint8x2,
	{typetag.I8Vec4, false}: gputypes.VertexFormatSint8x4,
	{typetag.U8Vec2, true}:  gputypes.VertexFormatUnorm8x2,
	{typetag.U8Vec4, true}:  gputypes.VertexFormatUnorm8x4,
	{typetag.I8Vec2, true}:  gputypes.VertexFormatSnorm8x2,
	{typetag.I8Vec4, true}:  gputypes.VertexFormatSnorm8x4,
}

// GPUFormat maps a tag and normalize flag to a WebGPU vertex format.
// Matrices, doubles and 1 or 3 component 8/16-bit vectors have no vertex
// format and are reported as unsupported.
func GPUFormat(tag typetag.Tag, normalize bool) (gputypes.VertexFormat, error) {
	if f, ok := vertexFormats[formatKey{tag, normalize}]; ok {
		return f, nil
	}
	return gputypes.VertexFormatUndefined, errors.New(errors.PhaseResolve, errors.KindUnsupported).
		GPUType(tag.String()).
		Value(normalize).
		Detail("no vertex format (normalize=%t)", normalize).
		Build()
}

// BufferLayout converts the format to a gputypes.VertexBufferLayout.
// Explicit locations are used as is; AutoLocation attributes are looked up
// in resolver, which may be nil when every location is explicit.
func (f *Format) BufferLayout(step StepMode, resolver gpulayout.LocationResolver) (gputypes.VertexBufferLayout, error) {
	attrs := make([]gputypes.VertexAttribute, 0, len(f.attrs))

	for _, a := range f.attrs {
		path := []string{f.typ.Name(), a.Name}

		location := uint32(a.Location)
		if !a.Explicit() {
			var ok bool
			if resolver != nil {
				location, ok = resolver.AttributeLocation(a.Name)
			}
			if !ok {
				return gputypes.VertexBufferLayout{}, errors.UnresolvedLocation(path, a.Name)
			}
		}

		format, err := GPUFormat(a.Type, a.Normalize)
		if err != nil {
			return gputypes.VertexBufferLayout{}, atPath(err, path)
		}

		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Offset),
			ShaderLocation: location,
		})
	}

	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(f.stride),
		StepMode:    step.gpu(),
		Attributes:  attrs,
	}, nil
}
