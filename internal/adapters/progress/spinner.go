package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// TaskProgress reports task progress on a terminal. Spinner events animate a
// spinner while a transaction is pending; in non-interactive mode every
// event message is printed as a plain line instead.
type TaskProgress struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	stageStart  time.Time
	stage       string
}

// NewTaskProgress creates a progress sink writing to out
func NewTaskProgress(out io.Writer, interactive bool) *TaskProgress {
	return &TaskProgress{
		out:         out,
		interactive: interactive,
	}
}

// OnProgress handles progress events
func (p *TaskProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != p.stage {
		p.stage = event.Stage
		p.stageStart = time.Now()
	}

	if !p.interactive {
		if event.Message == "" {
			return
		}
		if event.Total > 0 {
			fmt.Fprintf(p.out, "[%d/%d] %s\n", event.Current, event.Total, event.Message)
		} else {
			fmt.Fprintln(p.out, event.Message)
		}
		return
	}

	if event.Spinner {
		if p.spinner == nil {
			p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			p.spinner.Writer = p.out
			p.spinner.HideCursor = false
			_ = p.spinner.Color("cyan", "bold")
		}
		p.spinner.Suffix = " " + p.suffix(event)
		if !p.spinner.Active() {
			p.spinner.Start()
		}
		return
	}

	p.stop()
	if event.Message != "" {
		fmt.Fprintln(p.out, event.Message)
	}
}

func (p *TaskProgress) suffix(event usecase.ProgressEvent) string {
	msg := event.Message
	if event.Total > 0 {
		msg = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, msg)
	}
	if elapsed := time.Since(p.stageStart); elapsed >= time.Second {
		msg += color.New(color.Faint).Sprintf(" (%s)", elapsed.Round(time.Second))
	}
	return msg
}

// Info prints an info message
func (p *TaskProgress) Info(message string) {
	p.pause(func() {
		color.New(color.FgCyan).Fprintln(p.out, message)
	})
}

// Error prints an error message
func (p *TaskProgress) Error(message string) {
	p.pause(func() {
		color.New(color.FgRed).Fprintln(p.out, message)
	})
}

// pause stops the spinner while fn prints, then restarts it
func (p *TaskProgress) pause(fn func()) {
	wasActive := p.spinner != nil && p.spinner.Active()
	if wasActive {
		p.spinner.Stop()
	}
	fn()
	if wasActive {
		p.spinner.Start()
	}
}

func (p *TaskProgress) stop() {
	if p.spinner != nil && p.spinner.Active() {
		p.spinner.Stop()
	}
}

// Done stops any running spinner
func (p *TaskProgress) Done() {
	p.stop()
}

// Ensure TaskProgress implements ProgressSink
var _ usecase.ProgressSink = (*TaskProgress)(nil)
