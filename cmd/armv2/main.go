// Command armv2 boots a small ARMv2 boot image and runs it to completion
// or until interrupted.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/bvisness/armv2/internal/armlog"
	"github.com/bvisness/armv2/pkg/armv2"
)

func main() {
	os.Exit(run())
}

func run() int {
	optROM := getopt.StringLong("rom", 'f', "", "Boot ROM image path")
	optMemSize := getopt.Uint32Long("mem", 'm', 1<<20, "Memory size in bytes")
	optVerbose := getopt.BoolLong("verbose", 'v', "Trace each fetched instruction")
	optDebug := getopt.BoolLong("debug", 'd', "Single-step, waiting for Enter between cycles")
	optDevices := getopt.Uint32Long("devices", 'n', 0, "Number of devices the hardware manager reports")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file (default: stderr)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}
	if *optROM == "" {
		fmt.Fprintln(os.Stderr, "armv2: -f/--rom is required")
		return 1
	}

	logOut := os.Stderr
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "armv2: opening log file:", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	level := slog.LevelInfo
	if *optVerbose || *optDebug {
		level = slog.LevelDebug
	}
	logger := armlog.New(logOut, level)
	slog.SetDefault(logger)

	logger.Info("armv2 started", "rom", *optROM, "mem", *optMemSize)

	m, err := armv2.New(*optMemSize)
	if err != nil {
		logger.Error("init failed", "err", err)
		return 1
	}
	m.SetLogger(logger)
	if hw := m.HardwareManager(); hw != nil {
		hw.SetNumDevices(*optDevices)
	}

	rom, err := os.Open(*optROM)
	if err != nil {
		logger.Error("opening ROM", "err", err)
		return 1
	}
	defer rom.Close()

	if err := m.LoadROM(rom); err != nil {
		logger.Error("load failed", "err", err)
		return 1
	}

	halt := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(halt)
	}()

	if *optVerbose || *optDebug {
		return traceLoop(m, halt, *optDebug, logger)
	}

	if err := m.Run(halt); err != nil {
		logger.Error("run failed", "err", err)
		return 1
	}
	return 0
}

// traceLoop mirrors the teacher's -v/-d flags: verbose mode logs each
// fetched instruction's disassembly before executing it; debug mode
// additionally single-steps, waiting for Enter on stdin between cycles.
func traceLoop(m *armv2.Machine, halt chan struct{}, debug bool, logger *slog.Logger) int {
	var stdin [1]byte
	for {
		select {
		case <-halt:
			return 0
		default:
		}
		pc := m.CPU().PCAddr()
		instr, fetchExc := m.Memory().ReadWord(pc, armv2.PermExec)
		if fetchExc == armv2.NoException {
			logger.Debug("fetch", "pc", fmt.Sprintf("0x%08X", pc), "disasm", armv2.Disassemble(instr))
		}
		if debug {
			fmt.Fprintln(os.Stderr, m.CPU().DumpState())
			os.Stdin.Read(stdin[:])
		}
		if _, err := m.Step(); err != nil {
			logger.Error("run failed", "err", err)
			return 1
		}
	}
}
