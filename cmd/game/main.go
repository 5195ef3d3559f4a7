package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/draw"
	"github.com/tomz197/galacticsurvivor/internal/loop"
	"golang.org/x/term"
)

func main() {
	tuning, err := config.TuningFromEnv("GS_TUNING")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load tuning: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.EnableMouse(os.Stdout)
	defer draw.DisableMouse(os.Stdout)

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Tuning:   tuning,
		Username: config.GetEnv("USER", "pilot"),
		Seed:     config.GetEnvInt("GS_SEED", 0),
	})
	if err != nil {
		draw.DisableMouse(os.Stdout)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
