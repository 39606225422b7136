package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/fleettop/internal/monitor"
)

// Program runs the dashboard on the terminal and implements
// monitor.Renderer. Render never blocks: if the terminal falls behind, only
// the newest snapshot is kept.
type Program struct {
	prog   *tea.Program
	frames chan monitor.Snapshot
	done   chan struct{}
}

var _ monitor.Renderer = (*Program)(nil)

// NewProgram wraps model in a bubbletea program. opts are passed through
// (alt screen, input/output overrides).
func NewProgram(model Model, opts ...tea.ProgramOption) *Program {
	return &Program{
		prog:   tea.NewProgram(model, opts...),
		frames: make(chan monitor.Snapshot, 1),
		done:   make(chan struct{}),
	}
}

// Run takes over the terminal until Quit is called or the program fails.
func (p *Program) Run() error {
	go p.forward()
	defer close(p.done)

	_, err := p.prog.Run()
	return err
}

// Render implements monitor.Renderer.
func (p *Program) Render(snap monitor.Snapshot) {
	for {
		select {
		case p.frames <- snap:
			return
		default:
		}
		// Drop the stale frame and try again
		select {
		case <-p.frames:
		default:
		}
	}
}

// Quit asks the program to restore the terminal and exit.
func (p *Program) Quit() {
	p.prog.Quit()
}

func (p *Program) forward() {
	for {
		select {
		case <-p.done:
			return
		case snap := <-p.frames:
			p.prog.Send(frameMsg(snap))
		}
	}
}
