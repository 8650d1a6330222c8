package eventsink

import (
	"fmt"
	"os"

	"github.com/briarwolf/knockbell/detector"
	"github.com/creack/pty"
	"github.com/pkg/term"
)

/*------------------------------------------------------------------
 *
 * Purpose:	UART debug console. On real hardware this is a physical
 *		UART; on a development host there usually isn't one, so
 *		this opens a pseudo-terminal pair with creack/pty and puts
 *		the slave side into raw mode with pkg/term. Lines are written
 *		to the master side, so a bench tool can attach to the slave
 *		device path and tail human-readable event lines the way it
 *		would tail a real UART adapter.
 *
 *----------------------------------------------------------------*/

// SerialConsole writes one line per detection and one per diagnostic event
// (of any kind) to a pseudo-terminal, announcing the slave device path so an operator can
// attach a terminal emulator to it.
type SerialConsole struct {
	master *os.File
	slave  *term.Term
}

// NewSerialConsole opens a fresh PTY pair and puts the slave side in raw
// mode at baud. Returns the slave's device path for the caller to log.
func NewSerialConsole(baud int) (*SerialConsole, string, error) {
	master, slavePath, err := pty.Open()
	if err != nil {
		return nil, "", fmt.Errorf("eventsink: open pty: %w", err)
	}

	slave, err := term.Open(slavePath.Name(), term.RawMode)
	if err != nil {
		master.Close()
		return nil, "", fmt.Errorf("eventsink: open slave %s: %w", slavePath.Name(), err)
	}
	if baud > 0 {
		slave.SetSpeed(baud)
	}

	return &SerialConsole{master: master, slave: slave}, slavePath.Name(), nil
}

func (s *SerialConsole) HandleScan(det detector.Detections, diag detector.Diagnostics) {
	if det&detector.Knock != 0 {
		fmt.Fprintln(s.master, "KNOCK")
	}
	if det&detector.Bell != 0 {
		fmt.Fprintln(s.master, "BELL")
	}
	for _, ev := range diag.Events {
		fmt.Fprintf(s.master, "%s sample=%d height=%d\n", ev.Kind, ev.SampleIndex, ev.Peak.Height)
	}
}

func (s *SerialConsole) Close() error {
	s.slave.Close()
	return s.master.Close()
}
