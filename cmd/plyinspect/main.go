package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/recolude/plymotion/inspect"
	"github.com/recolude/plymotion/logging"
	"github.com/recolude/plymotion/ply"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const usage = "plyinspect <filename> [num_lines]"

var errMissingFilename = errors.New("missing filename")

func parseLines(arg string) (int, error) {
	if arg == "" {
		return inspect.DefaultLines, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("num_lines must be a positive integer, got %q", arg)
	}
	return n, nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "plyinspect",
		Usage:           "Prints the record layout and the first vertices of a motion ply file",
		UsageText:       usage,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "zap log level for diagnostics written to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				fmt.Fprintf(c.App.ErrWriter, "Usage: %s\n", usage)
				return errMissingFilename
			}

			filename := c.Args().Get(0)
			lines, err := parseLines(c.Args().Get(1))
			if err != nil {
				return err
			}

			logger, err := logging.NewWriter(c.App.ErrWriter, logging.Config{Level: c.String("log-level")})
			if err != nil {
				return err
			}
			defer logger.Sync()

			fmt.Fprintf(c.App.Writer, "Reading: %s\n", filename)

			f, err := ply.Load(filename)
			if err != nil {
				return err
			}

			for _, msg := range f.Inconsistencies() {
				logger.Warn(msg, zap.String("file", filename))
			}

			return inspect.Print(c.App.Writer, f, lines)
		},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errMissingFilename) {
		fmt.Fprintf(stderr, "plyinspect: %v\n", err)
	}
	return 1
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
