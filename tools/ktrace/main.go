// Command ktrace attaches to a running kernel instance over a serial
// transport (or a local pty standing in for one during development) and
// renders the dead-queue, fault-queue and vtimer-tick frames it streams
// out. It is a dev tool: it renders bytes, it never decides
// PAUSE/RESUME/REAP policy itself - that is left to whatever reaper or
// debugger is attached at the other end.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"go.bug.st/serial"
	"golang.org/x/term"

	"nanokernel/tools/ktrace/wire"
)

var (
	device  = flag.String("device", "", "Serial device to attach to (e.g. /dev/ttyUSB0)")
	baud    = flag.Int("baud", 115200, "Baud rate")
	timeout = flag.Duration("read-timeout", 200*time.Millisecond, "Per-read timeout")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ktrace -device <path> [-baud N]\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *device == "" {
		usage()
		os.Exit(1)
	}

	mode := &serial.Mode{BaudRate: *baud, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}
	port, err := serial.Open(*device, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *device, err)
		os.Exit(1)
	}
	defer port.Close()
	port.SetReadTimeout(*timeout)

	restore := setupTerminal()
	defer restore()

	run(port)
}

// setupTerminal puts stdin in raw mode when it is an interactive terminal,
// so keystrokes the operator types reach ktrace one at a time instead of
// being line-buffered by the tty driver, and returns a func that restores
// the previous state.
func setupTerminal() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	if _, err := term.MakeRaw(fd); err != nil {
		return func() {}
	}

	return func() { term.Restore(fd, state) }
}

// run decodes frames off port until it is closed or returns an
// unrecoverable read error, printing each decoded event to stdout.
func run(port serial.Port) {
	r := bufio.NewReader(port)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		ev, err := wire.ReadEvent(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ktrace: %v\n", err)
			return
		}

		fmt.Fprintln(out, ev.String())
		out.Flush()
	}
}
