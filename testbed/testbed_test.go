package testbed

import (
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/wippyai/gpu-layout/content"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/program"
	"github.com/wippyai/gpu-layout/shader"
	"github.com/wippyai/gpu-layout/uniforms"
	"github.com/wippyai/gpu-layout/vertex"
)

type PointLight struct {
	Position mgl32.Vec3
	Radius   float32
	Color    mgl32.Vec4
}

type Lighting struct {
	Ambient    mgl32.Vec4
	Lights     [4]PointLight
	LightCount uint32
	Gamma      float32
}

type MeshVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

type ParticleHeader struct {
	Count uint32
	Time  float32
	_     [2]uint32
}

type Particle struct {
	Position mgl32.Vec3
	Age      float32
	Velocity mgl32.Vec3
	Mass     float32
}

func loadProgram(t *testing.T, name string) (*program.Program, *shader.Reflection) {
	t.Helper()
	src, err := os.ReadFile("shaders/" + name + ".wgsl")
	if err != nil {
		t.Fatalf("read shader: %v", err)
	}
	r, err := shader.ReflectWGSL(string(src))
	if err != nil {
		t.Fatalf("reflect %s: %v", name, err)
	}
	return program.New(name, r), r
}

func TestLighting_VertexLayout(t *testing.T) {
	p, _ := loadProgram(t, "lighting")

	l, err := program.BindVertex[MeshVertex](p, vertex.PerVertex)
	if err != nil {
		t.Fatalf("bind vertex: %v", err)
	}

	if l.ArrayStride != 32 {
		t.Errorf("ArrayStride = %d, want 32", l.ArrayStride)
	}
	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	}
	if len(l.Attributes) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(l.Attributes), len(want))
	}
	for i := range want {
		if l.Attributes[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, l.Attributes[i], want[i])
		}
	}
}

func TestLighting_UniformBlock(t *testing.T) {
	p, r := loadProgram(t, "lighting")

	if err := program.BindUniform[Lighting](p, "lighting"); err != nil {
		t.Fatalf("bind lighting: %v", err)
	}

	block, _ := r.UniformBlock("lighting")
	derived, err := layout.Std140(layout.MustHostOf[Lighting]())
	if err != nil {
		t.Fatalf("std140: %v", err)
	}
	if derived.String() != block.String() {
		t.Errorf("std140 layout differs from reflection\n  std140:  %s\n  shader:  %s", derived, block)
	}
}

func TestLighting_Mismatch(t *testing.T) {
	type TightLighting struct {
		Ambient    mgl32.Vec3
		Lights     [4]PointLight
		LightCount uint32
		Gamma      float32
	}

	p, r := loadProgram(t, "lighting")

	err := program.BindUniform[TightLighting](p, "lighting")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseMatch, Kind: errors.KindLayoutMismatch}) {
		t.Fatalf("err = %v, want layout mismatch", err)
	}

	desc := layout.Describe(stderrors.Unwrap(err))
	for _, want := range []string{"ambient: layout mismatch", "expected: vec3@0", "obtained: vec4@0"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Describe() = %q, missing %q", desc, want)
		}
	}

	block, _ := r.UniformBlock("lighting")
	all := layout.MustHostOf[TightLighting]().MatchAll(block, 0)
	if len(all) < 2 {
		t.Errorf("MatchAll found %d differences, want every shifted member", len(all))
	}
}

func TestMesh_PackUniforms(t *testing.T) {
	_, r := loadProgram(t, "lighting")

	block, ok := r.UniformBlock("mesh")
	if !ok {
		t.Fatal("mesh block not reflected")
	}

	normal := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	data, err := uniforms.New().
		Add("model", mgl32.Translate3D(1, 2, 3)).
		Add("normal", normal).
		Pack(block)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	if len(data) != 112 {
		t.Fatalf("len = %d, want 112", len(data))
	}
	f := func(off int) float32 { return *(*float32)(unsafe.Pointer(&data[off])) }
	if got := f(56); got != 3 {
		t.Errorf("model translation z = %v, want 3", got)
	}
	if got := f(80); got != 4 {
		t.Errorf("normal[1][0] = %v, want 4", got)
	}
	if got := f(104); got != 9 {
		t.Errorf("normal[2][2] = %v, want 9", got)
	}
}

func TestParticles_Storage(t *testing.T) {
	p, r := loadProgram(t, "particles")

	adapter, err := program.BindStorage[ParticleHeader, Particle](p, "particles")
	if err != nil {
		t.Fatalf("bind particles: %v", err)
	}
	if d := adapter.Descriptor(); d != (content.Descriptor{FixedSize: 16, Stride: 32}) {
		t.Errorf("descriptor = %v, want 16 + n*32", d)
	}

	if d, ok := r.StorageBuffer("weights"); !ok || d != (content.Descriptor{FixedSize: 0, Stride: 4}) {
		t.Errorf("weights descriptor = %v, %v", d, ok)
	}
	if _, err := program.BindStorage[struct{}, float32](p, "weights"); err != nil {
		t.Errorf("bind weights: %v", err)
	}

	view, err := adapter.Read(adapter.SizeFor(3), func(v *content.View[ParticleHeader, Particle]) error {
		v.Head().Count = 3
		for i := range v.Elems() {
			v.Elems()[i].Mass = float32(i + 1)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	again, err := adapter.View(view.Bytes())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if again.Head().Count != 3 || again.Len() != 3 || again.Elems()[2].Mass != 3 {
		t.Errorf("view = count %d, len %d", again.Head().Count, again.Len())
	}
}

func TestParticles_Inputs(t *testing.T) {
	p, r := loadProgram(t, "particles")

	if loc, ok := r.AttributeLocation("corner"); !ok || loc != 0 {
		t.Errorf("corner = %d, %v", loc, ok)
	}
	if _, ok := r.AttributeLocation("i"); ok {
		t.Error("builtin instance_index reported as an input")
	}

	type Quad struct {
		Corner [2]float32
	}
	l, err := program.BindVertex[Quad](p, vertex.PerInstance)
	if err != nil {
		t.Fatalf("bind quad: %v", err)
	}
	if l.StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("StepMode = %v, want instance", l.StepMode)
	}
}
