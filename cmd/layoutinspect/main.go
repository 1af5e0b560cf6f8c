package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/shader"
	"github.com/wippyai/gpu-layout/uniforms"
)

func main() {
	var (
		wgslFile    = flag.String("wgsl", "", "Path to WGSL shader source")
		blockName   = flag.String("block", "", "Only show buffers whose name contains this string")
		entryPoint  = flag.String("entry", "", "Vertex entry point to collect inputs from (default: all)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *wgslFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: layoutinspect -wgsl <shader.wgsl> [-block name] [-entry vs_main] [-v]")
		fmt.Fprintln(os.Stderr, "       layoutinspect -wgsl <shader.wgsl> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		shader.SetLogger(log)
	}

	r, err := load(*wgslFile, *entryPoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*wgslFile, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	report(os.Stdout, *wgslFile, r, *blockName, styled)
}

func load(filename, entryPoint string) (*shader.Reflection, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var opts []shader.Option
	if entryPoint != "" {
		opts = append(opts, shader.EntryPoint(entryPoint))
	}
	r, err := shader.ReflectWGSL(string(src), opts...)
	if err != nil {
		return nil, fmt.Errorf("reflect: %w", err)
	}
	return r, nil
}

// painter applies lipgloss styles only when output is a terminal.
type painter bool

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p {
		return text
	}
	return s.Render(text)
}

func report(w io.Writer, filename string, r *shader.Reflection, filter string, styled bool) {
	p := painter(styled)
	fmt.Fprintf(w, "%s %s\n", p.paint(titleStyle, "Shader"), filename)

	fmt.Fprintf(w, "\n%s\n", p.paint(headerStyle, "Uniform blocks"))
	shown := 0
	for _, name := range r.UniformBlocks() {
		if !strings.Contains(name, filter) {
			continue
		}
		shown++
		block, _ := r.UniformBlock(name)
		fmt.Fprintf(w, "%s %s %s\n", p.paint(nameStyle, name), bindingLabel(r, name), p.paint(typeStyle, fmt.Sprintf("(%d bytes)", uniforms.Size(block))))
		writeIndented(w, layout.Tree(block))
	}
	if shown == 0 {
		fmt.Fprintln(w, "  none")
	}

	fmt.Fprintf(w, "\n%s\n", p.paint(headerStyle, "Storage buffers"))
	shown = 0
	for _, name := range r.StorageBuffers() {
		if !strings.Contains(name, filter) {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s %s", p.paint(nameStyle, name), bindingLabel(r, name))
		if d, ok := r.StorageBuffer(name); ok {
			fmt.Fprintf(w, " %s", p.paint(typeStyle, d.String()))
		}
		fmt.Fprintln(w)
		block, _ := r.StorageBlock(name)
		writeIndented(w, layout.Tree(block))
	}
	if shown == 0 {
		fmt.Fprintln(w, "  none")
	}

	if filter != "" {
		return
	}
	fmt.Fprintf(w, "\n%s\n", p.paint(headerStyle, "Vertex inputs"))
	inputs := r.Inputs()
	if len(inputs) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, in := range inputs {
		fmt.Fprintf(w, "  @location(%d) %s\n", in.Location, p.paint(nameStyle, in.Name))
	}
}

func bindingLabel(r *shader.Reflection, name string) string {
	b, ok := r.BindingOf(name)
	if !ok {
		return ""
	}
	return fmt.Sprintf("@group(%d) @binding(%d)", b.Group, b.Binding)
}

func writeIndented(w io.Writer, tree string) {
	for _, line := range strings.Split(strings.TrimRight(tree, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
