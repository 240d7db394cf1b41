package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alde/bitcam/pkg/capture"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
	"github.com/alde/bitcam/pkg/preset"
	"github.com/spf13/cobra"
)

const editHelp = `Commands:
  capture PATH   take a photo (capture screen only)
  scale N        resolution in percent
  mode M         gradation mode (none, grayscale, rgb)
  levels N       gradation levels (2-256)
  preset NAME    apply a preset
  reset          back to native resolution and full colour
  show           print the current summary
  preview PATH   write the current image at source size
  back           discard the photo
  retake PATH    discard the photo and capture a new one
  help           list commands
  quit           leave the session`

var editCmd = &cobra.Command{
	Use:   "edit [image]",
	Short: "Capture a photo and adjust it interactively",
	Long: `Start an interactive editing session. Commands are read from stdin,
one per line. Every change recomputes the whole image from the captured
photo and prints the new size summary.

` + editHelp,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	e := &editor{
		ctx:     cmd.Context(),
		out:     cmd.OutOrStdout(),
		machine: capture.NewMachine(),
	}

	if len(args) == 1 {
		if err := validateSource(args[0]); err != nil {
			return fmt.Errorf("input validation failed: %w", err)
		}
		if err := e.capture(args[0]); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(e.out, "No photo yet. Use 'capture PATH' to take one.")
	}

	return e.run(cmd.InOrStdin())
}

var errQuit = errors.New("quit")

// editor is the line-oriented front end of a capture.Machine
type editor struct {
	ctx     context.Context
	out     io.Writer
	machine *capture.Machine
}

func (e *editor) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	e.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			err := e.exec(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(e.out, "Error: %v\n", err)
			}
		}
		e.prompt()
	}
	return scanner.Err()
}

func (e *editor) prompt() {
	fmt.Fprintf(e.out, "%s> ", e.machine.State())
}

func (e *editor) exec(line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(e.out, editHelp)
		return nil
	case "capture":
		if arg == "" {
			return fmt.Errorf("usage: capture PATH")
		}
		return e.capture(arg)
	case "retake":
		if arg == "" {
			return fmt.Errorf("usage: retake PATH")
		}
		return e.retake(arg)
	case "back":
		e.machine.Back()
		fmt.Fprintln(e.out, "Photo discarded")
		return nil
	}

	session, err := e.machine.Session()
	if err != nil {
		return err
	}

	switch strings.ToLower(name) {
	case "scale":
		scale, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid scale: %s", arg)
		}
		return e.apply(session, func(p *pipeline.Params) { p.Scale = scale })
	case "mode":
		mode, err := gradation.ParseMode(arg)
		if err != nil {
			return err
		}
		return e.apply(session, func(p *pipeline.Params) { p.Mode = mode })
	case "levels":
		levels, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid level count: %s", arg)
		}
		if err := gradation.ValidateLevels(levels); err != nil {
			return err
		}
		return e.apply(session, func(p *pipeline.Params) { p.Levels = levels })
	case "preset":
		ps, err := preset.Get(arg)
		if err != nil {
			return err
		}
		return e.apply(session, func(p *pipeline.Params) { *p = ps.Params })
	case "reset":
		res, err := session.Reset()
		if err != nil {
			return err
		}
		printSummary(e.out, session.Source(), res, 2)
		return nil
	case "show":
		printSummary(e.out, session.Source(), session.Current(), 2)
		return nil
	case "preview":
		if err := validatePreviewPath(arg); err != nil {
			return err
		}
		if err := writePreview(arg, session.Source(), session.Current()); err != nil {
			return err
		}
		fmt.Fprintf(e.out, "Preview written to %s\n", arg)
		return nil
	}

	return fmt.Errorf("unknown command %q (try 'help')", name)
}

func (e *editor) apply(session *pipeline.Session, fn func(*pipeline.Params)) error {
	res, err := session.Modify(fn)
	if err != nil {
		return err
	}
	printSummary(e.out, session.Source(), res, 2)
	return nil
}

func (e *editor) capture(path string) error {
	session, err := e.machine.Capture(e.ctx, capture.OpenFile(path))
	if err != nil {
		return err
	}
	e.captured(path, session)
	return nil
}

func (e *editor) retake(path string) error {
	session, err := e.machine.Retake(e.ctx, capture.OpenFile(path))
	if err != nil {
		return err
	}
	e.captured(path, session)
	return nil
}

func (e *editor) captured(path string, session *pipeline.Session) {
	fmt.Fprintf(e.out, "Captured %s (minimum scale %.1f%%)\n", path, session.MinScale())
	printSummary(e.out, session.Source(), session.Current(), 2)
}
