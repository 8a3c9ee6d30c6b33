package runtime

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anathema-go/anathema/widget"
)

// runConfig holds the bubbletea program options Run assembles.
type runConfig struct {
	width, height int
	mouseAllMotion bool
	fps           int
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithSize sets the backend's initial cell grid size, used until the
// first tea.WindowSizeMsg arrives.
func WithSize(width, height int) RunOption {
	return func(c *runConfig) { c.width, c.height = width, height }
}

// WithMouseAllMotion enables reporting every mouse motion event, not
// just clicks and drags.
func WithMouseAllMotion() RunOption {
	return func(c *runConfig) { c.mouseAllMotion = true }
}

// WithFPS overrides the default 30 FPS frame pacing.
func WithFPS(fps int) RunOption {
	return func(c *runConfig) { c.fps = fps }
}

// Run drives loop to completion inside a bubbletea program backed by a
// TeaBackend, returning once a Stop event ends the loop or the program
// otherwise exits.
func Run(loop *Loop, opts ...RunOption) error {
	cfg := &runConfig{width: 80, height: 24, fps: loop.FPS}
	for _, opt := range opts {
		opt(cfg)
	}
	loop.FPS = cfg.fps

	backend := NewTeaBackend(cfg.width, cfg.height)
	loop.Backend = backend

	model := &teaModel{loop: loop, backend: backend}
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.mouseAllMotion {
		teaOpts = append(teaOpts, tea.WithMouseAllMotion())
	} else {
		teaOpts = append(teaOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, teaOpts...)
	_, err := p.Run()
	return err
}

// FocusComponent sets which registered component receives Key/Focus/Blur
// events, by the widget id it was registered under. It is a no-op if id
// names nothing registered.
func FocusComponent(loop *Loop, id widget.ID) {
	for i, reg := range loop.Components {
		if reg.ID == id {
			loop.Focused = i
			return
		}
	}
}
