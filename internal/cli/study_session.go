package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

// StudyService is the part of study.Service used by the interactive session
type StudyService interface {
	Visit(ctx context.Context, today tracker.Date) (*study.Dashboard, error)
	SetTaskCompleted(ctx context.Context, today tracker.Date, index int, completed bool) ([]tracker.Task, error)
	Finalize(ctx context.Context, today tracker.Date) (*tracker.HistoryEntry, error)
}

// StudyCLI lets the learner tick off today's tasks and finalize the day from a terminal
type StudyCLI struct {
	service      StudyService
	today        tracker.Date
	renderer     *Renderer
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	red          *color.Color

	tasks []tracker.Task
}

func NewStudyCLI(service StudyService, today tracker.Date, stdin io.Reader, stdout io.Writer) *StudyCLI {
	return &StudyCLI{
		service:      service,
		today:        today,
		renderer:     NewRenderer(stdout),
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		red:          color.New(color.FgRed),
	}
}

// Start checks in and shows the dashboard. It must be called before the first Session.
func (cli *StudyCLI) Start(ctx context.Context) error {
	dashboard, err := cli.service.Visit(ctx, cli.today)
	if err != nil {
		return fmt.Errorf("service.Visit() > %w", err)
	}
	cli.tasks = dashboard.Tasks
	cli.renderer.Dashboard(dashboard)
	_, _ = fmt.Fprintln(cli.stdoutWriter)
	cli.printHelp()
	return nil
}

// Session reads and applies one command.
func (cli *StudyCLI) Session(ctx context.Context) error {
	_, _ = cli.bold.Fprint(cli.stdoutWriter, "> ")

	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	command := strings.ToLower(strings.TrimSpace(line))
	if command == "" && errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(cli.stdoutWriter)
		return errEnd
	}

	switch command {
	case "":
		cli.renderer.Tasks(cli.tasks)
		return nil
	case "q", "quit":
		return errEnd
	case "f", "finalize":
		entry, err := cli.service.Finalize(ctx, cli.today)
		if err != nil {
			return fmt.Errorf("service.Finalize() > %w", err)
		}
		cli.renderer.Finalized(entry)
		return errEnd
	case "h", "help", "?":
		cli.printHelp()
		return nil
	}

	number, convErr := strconv.Atoi(command)
	if convErr != nil {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Unknown command %q\n", command)
		cli.printHelp()
		return nil
	}
	return cli.toggle(ctx, number)
}

// toggle flips the task with the 1-based number shown on the screen.
func (cli *StudyCLI) toggle(ctx context.Context, number int) error {
	index := number - 1
	if index < 0 || index >= len(cli.tasks) {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Choose a task between 1 and %d\n", len(cli.tasks))
		return nil
	}

	updated, err := cli.service.SetTaskCompleted(ctx, cli.today, index, !cli.tasks[index].Completed)
	if errors.Is(err, study.ErrTaskIndexOutOfRange) {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.SetTaskCompleted() > %w", err)
	}
	cli.tasks = updated
	cli.renderer.Tasks(cli.tasks)
	return nil
}

func (cli *StudyCLI) printHelp() {
	_, _ = fmt.Fprintln(cli.stdoutWriter, "Enter a task number to toggle it, f to finalize the day, q to quit")
}
