package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/animation"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/session"
)

const interactiveHelp = `Commands:
  f <markup>                     set the field, e.g. f \frac{x^2+y^2}{2}
  go <x> <y>                     trace from a start point and animate
  clear                          cancel the animation and remove the path
  fps <15|24|30|60|120>          playback rate
  ascend on|off                  climb instead of descend
  opacity <0..1>                 surface opacity
  range <xmin> <xmax> <ymin> <ymax>
  help, quit
`

// Interactive drives a session controller from line-based input.
type Interactive struct {
	ctrl *session.Controller
	out  io.Writer
}

// NewInteractive wires a controller to a terminal host and the frame loop req.
func NewInteractive(rt *Runtime, out io.Writer, width int, rich bool, req animation.FrameRequester) *Interactive {
	host := tui.NewHost(out, width, rich)
	ctrl := session.NewController(rt.Engine, host, req,
		session.WithSettings(rt.Settings),
		session.WithControllerLogger(rt.Logger),
	)
	return &Interactive{ctrl: ctrl, out: out}
}

// Controller exposes the underlying session controller.
func (it *Interactive) Controller() *session.Controller { return it.ctrl }

// Run reads commands from in until EOF, quit, or ctx is done.
func (it *Interactive) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(it.out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			it.ctrl.Clear()
			return nil
		}
		if err := it.Exec(ctx, line); err != nil {
			tui.Failure(it.out, err.Error())
		}
		fmt.Fprint(it.out, "> ")
	}
	return scanner.Err()
}

// Exec runs one command line. Errors the controller already displayed are
// not returned.
func (it *Interactive) Exec(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "":
		return nil
	case "help":
		fmt.Fprint(it.out, interactiveHelp)
	case "f", "field":
		_ = it.ctrl.Update(ctx, rest)
	case "go":
		if len(args) != 2 {
			args = append(args, "", "")
		}
		_ = it.ctrl.Animate(ctx, args[0], args[1])
	case "clear":
		it.ctrl.Clear()
	case "fps":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("%w: fps %q is not a number", domain.ErrInvalidConfig, rest)
		}
		return it.ctrl.SetFPS(n)
	case "ascend":
		switch rest {
		case "on", "true", "1":
			it.ctrl.SetAscend(true)
		case "off", "false", "0":
			it.ctrl.SetAscend(false)
		default:
			return fmt.Errorf("%w: ascend takes on or off", domain.ErrInvalidConfig)
		}
	case "opacity":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return fmt.Errorf("%w: opacity %q is not a number", domain.ErrInvalidConfig, rest)
		}
		return it.ctrl.SetOpacity(v)
	case "range":
		r, err := parseRange(args, it.ctrl.Settings().Ranges)
		if err != nil {
			return err
		}
		return it.ctrl.SetRanges(ctx, r)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func parseRange(args []string, base domain.Ranges) (domain.Ranges, error) {
	if len(args) != 4 {
		return base, fmt.Errorf("%w: range takes xmin xmax ymin ymax", domain.ErrInvalidConfig)
	}
	var v [4]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return base, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidConfig, a)
		}
		v[i] = f
	}
	base.XMin, base.XMax, base.YMin, base.YMax = v[0], v[1], v[2], v[3]
	return base, nil
}
