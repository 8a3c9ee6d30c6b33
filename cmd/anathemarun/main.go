// Command anathemarun compiles a single .tmpl file and drives it through
// the full pipeline: lex, parse, optimize, compile, materialize into
// blueprints, build a widget tree bound to a demo root state, then run
// it in a terminal via runtime.Run. It exists to exercise the pipeline
// end to end, not to be a product CLI — there is no component
// registration, no message injection, no config file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/runtime"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
	"github.com/anathema-go/anathema/widget"
	"github.com/anathema-go/anathema/widgets"
)

// demoState is the root state bound to `state.*` lookups in the
// template. Its shape is arbitrary — anathemarun exists to drive
// whatever template it's pointed at, not to model one application.
type demoState struct {
	Title string `anathema:"title"`
	Count int    `anathema:"count"`
}

func main() {
	var (
		width   = flag.Int("width", 80, "initial backend width")
		height  = flag.Int("height", 24, "initial backend height")
		fps     = flag.Int("fps", 30, "frame pacing")
		mouse   = flag.Bool("mouse-all-motion", false, "report every mouse motion, not just clicks/drags")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <template.tmpl>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *width, *height, *fps, *mouse); err != nil {
		fmt.Fprintln(os.Stderr, "anathemarun:", err)
		os.Exit(1)
	}
}

func run(path string, width, height, fps int, mouseAllMotion bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	blueprints, globals, err := compile(string(src))
	if err != nil {
		return fmt.Errorf("compiling template: %w", err)
	}

	registry := widget.NewRegistry()
	widgets.Register(registry)
	components := widget.NewComponentRegistry()
	tree := widget.NewTree(registry, components)

	states := eval.NewStateTable()
	root := state.FromStruct(&demoState{Title: "anathema", Count: 0})
	stateID := states.Insert(root)

	scope := eval.NewScope()
	scope.PushState(stateID)

	ctx := &eval.Context{
		Scope:      scope,
		States:     states,
		Attributes: eval.NewAttributeTable(),
		Globals:    globals,
		Futures:    eval.NewFutureRegistry(),
	}

	tree.Build(blueprints, ctx)

	store := reactive.NewStore()
	loop := runtime.NewLoop(tree, ctx, store, nil, fps)

	opts := []runtime.RunOption{
		runtime.WithSize(width, height),
		runtime.WithFPS(fps),
	}
	if mouseAllMotion {
		opts = append(opts, runtime.WithMouseAllMotion())
	}
	return runtime.Run(loop, opts...)
}

// compile runs a template source string through the full pipeline:
// lex+parse to statements, optimize, linearize to instructions,
// materialize to blueprints.
func compile(src string) ([]template.Blueprint, map[string]template.Expression, error) {
	stmts, globals, err := template.ParseStatements(src)
	if err != nil {
		return nil, nil, err
	}

	optimized := template.Optimize(stmts)
	instructions := template.Compile(optimized)
	bps, err := template.Materialize(instructions)
	if err != nil {
		return nil, nil, err
	}
	return bps, globals, nil
}
