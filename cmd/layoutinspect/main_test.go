package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

const testShader = `
struct Globals {
    mvp: mat4x4<f32>,
    tint: vec4<f32>,
}

@group(0) @binding(0) var<uniform> globals: Globals;

struct Instances {
    count: u32,
    offsets: array<vec4<f32>>,
}

@group(0) @binding(1) var<storage, read> instances: Instances;

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) uv: vec2<f32>) -> @builtin(position) vec4<f32> {
    let o = instances.offsets[0];
    return globals.mvp * vec4<f32>(position, 1.0) * globals.tint + o + vec4<f32>(uv, 0.0, f32(instances.count));
}
`

func loadTestShader(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wgsl")
	if err := os.WriteFile(path, []byte(testShader), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReport(t *testing.T) {
	path := loadTestShader(t)
	r, err := load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var out strings.Builder
	report(&out, path, r, "", false)
	got := out.String()

	for _, want := range []string{
		"globals @group(0) @binding(0) (80 bytes)",
		"mvp: mat4@0",
		"tint: vec4@64",
		"instances @group(0) @binding(1) 16 + n*16",
		"@location(0) position",
		"@location(1) uv",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestReport_Filter(t *testing.T) {
	path := loadTestShader(t)
	r, err := load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var out strings.Builder
	report(&out, path, r, "inst", false)
	got := out.String()

	if strings.Contains(got, "mvp") {
		t.Errorf("filtered report shows globals:\n%s", got)
	}
	if !strings.Contains(got, "instances") {
		t.Errorf("filtered report hides instances:\n%s", got)
	}
	if strings.Contains(got, "Vertex inputs") {
		t.Errorf("filtered report shows inputs:\n%s", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "missing.wgsl"), ""); err == nil {
		t.Error("expected error for missing file")
	}

	path := loadTestShader(t)
	if _, err := load(path, "fs_main"); err == nil {
		t.Error("expected error for unknown entry point")
	}
}

func TestInteractiveModel(t *testing.T) {
	path := loadTestShader(t)
	r, err := load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	m := newInteractiveModel(path, r)
	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("inst")})
	if len(m.visible) != 1 || m.visible[0].name != "instances" {
		t.Fatalf("visible = %v, want [instances]", m.visible)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateDetail {
		t.Fatalf("state = %v, want detail", m.state)
	}
	if view := m.View(); !strings.Contains(view, "16 + n*16") {
		t.Errorf("detail view missing descriptor:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateBrowse {
		t.Errorf("state = %v, want browse", m.state)
	}
}
