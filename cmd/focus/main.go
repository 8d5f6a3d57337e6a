// Command focus is a terminal Pomodoro timer.
//
// Commands are read line by line from stdin: p (pause/resume), s (skip),
// r (reset), q (quit).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	"github.com/lk2023060901/ai-study-backend/internal/focus"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
)

var (
	configFile = flag.String("config", "", "config file path")
	focusLen   = flag.Duration("focus", 0, "focus length (overrides config)")
	shortLen   = flag.Duration("short", 0, "short break length (overrides config)")
	longLen    = flag.Duration("long", 0, "long break length (overrides config)")
	autoStart  = flag.Bool("auto", false, "start the next phase automatically")
	verbose    = flag.Bool("v", false, "log phase changes to stderr")
)

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	cfg := config.Focus
	if *focusLen > 0 {
		cfg.Focus = *focusLen
	}
	if *shortLen > 0 {
		cfg.ShortBreak = *shortLen
	}
	if *longLen > 0 {
		cfg.LongBreak = *longLen
	}
	if *autoStart {
		cfg.AutoStart = true
	}

	log := logger.NewNop()
	if *verbose {
		if log, err = logger.CLI(&config.Log); err != nil {
			fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
			os.Exit(1)
		}
	}
	defer log.Sync()

	notifier := focus.MultiNotifier{
		focus.NewBellNotifier(os.Stdout),
		focus.NewLogNotifier(log),
	}
	timer, err := focus.NewTimer(cfg, focus.SystemClock{}, notifier)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := make(chan string)
	go readCommands(commands)

	fmt.Println("p: pause/resume  s: skip  r: reset  q: quit")
	timer.Start()
	render(timer.Snapshot())

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case cmd, ok := <-commands:
			if !ok || cmd == "q" {
				fmt.Println()
				return
			}
			handle(timer, cmd)
			render(timer.Snapshot())
		case <-ticker.C:
			snap, err := timer.Tick(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, "\nnotify failed:", err)
			}
			render(snap)
		}
	}
}

func handle(timer *focus.Timer, cmd string) {
	switch cmd {
	case "p":
		if timer.Snapshot().Running {
			timer.Pause()
		} else {
			timer.Start()
		}
	case "s":
		timer.Skip()
	case "r":
		timer.Reset()
	}
}

func readCommands(out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- strings.ToLower(strings.TrimSpace(scanner.Text()))
	}
}

func render(s focus.Snapshot) {
	state := "running"
	if !s.Running {
		state = "paused"
	}
	remaining := s.Remaining.Round(time.Second)
	fmt.Printf("\r[%-11s] %02d:%02d  %-7s  sessions: %d ",
		s.Phase, int(remaining.Minutes()), int(remaining.Seconds())%60, state, s.CompletedFocus)
}
