package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
)

// SGR sequences
const (
	reset   = "\x1b[0m"
	bold    = "\x1b[1m"
	red     = "\x1b[31m"
	green   = "\x1b[32m"
	yellow  = "\x1b[33m"
	blinkRd = "\x1b[5;31m"
)

// Console writes one line per phase entry.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	now   func() time.Time
}

// NewConsole creates a console display writing to out
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color, now: time.Now}
}

// Render writes the phase pair. Writes are serialized so concurrent renders
// never interleave.
func (c *Console) Render(v crossing.VehiclePhase, p crossing.PedestrianPhase, crossingActive bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] vehicles: %s  pedestrians: %s",
		c.now().Format("15:04:05"),
		c.paint(vehicleColor(v), fmt.Sprintf("%-15s", v)),
		c.paint(pedestrianColor(p), fmt.Sprintf("%-18s", p)),
	)
	if crossingActive {
		b.WriteString("  ")
		b.WriteString(c.paint(bold, "CROSSING"))
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, b.String())
}

func (c *Console) paint(code, text string) string {
	if !c.color {
		return text
	}
	return code + text + reset
}

func vehicleColor(v crossing.VehiclePhase) string {
	switch v {
	case crossing.Green:
		return green
	case crossing.Red:
		return red
	default:
		return yellow
	}
}

func pedestrianColor(p crossing.PedestrianPhase) string {
	switch p {
	case crossing.Walk:
		return green
	case crossing.Wait:
		return yellow
	case crossing.Clearing:
		return blinkRd
	default:
		return red
	}
}
