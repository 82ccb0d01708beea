package main

import (
	"fmt"
	"io"
	"os"

	"github.com/recolude/plymotion/config"
	"github.com/recolude/plymotion/logging"
	"github.com/recolude/plymotion/ply"
	"github.com/recolude/plymotion/scene"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func configFromContext(c *cli.Context) (config.Import, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("ply") {
		cfg.PLYPath = c.String("ply")
	}
	if c.IsSet("object") {
		cfg.ObjectName = c.String("object")
	}
	if c.IsSet("out") {
		cfg.OutPLY = c.String("out")
	}
	if c.IsSet("rap") {
		cfg.OutRAP = c.String("rap")
	}
	if c.IsSet("write-ply") {
		cfg.WritePLY = c.String("write-ply")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("dev") {
		cfg.Log.Development = c.Bool("dev")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}
	return cfg, cfg.Validate()
}

func newLogger(stderr io.Writer, cfg config.Log) (*zap.Logger, error) {
	logCfg := logging.Config{
		Level:       cfg.Level,
		Development: cfg.Development,
		Encoding:    cfg.Encoding,
	}
	if cfg.File == "" {
		return logging.NewWriter(stderr, logCfg)
	}
	if logCfg.Encoding == "" {
		logCfg.Encoding = "json"
	}
	logCfg.OutputPaths = []string{cfg.File}
	return logging.New(logCfg)
}

func importCloud(cfg config.Import, logger *zap.Logger) (*scene.Object, error) {
	f, err := ply.Load(cfg.PLYPath)
	if err != nil {
		return nil, err
	}

	for _, msg := range f.Inconsistencies() {
		logger.Warn(msg)
	}

	host := scene.NewMemoryHost()
	err = scene.Import(host, f.Columns, scene.Options{
		ObjectName: cfg.ObjectName,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	obj, ok := host.Lookup(cfg.ObjectName)
	if !ok {
		return nil, fmt.Errorf("object %q missing after import", cfg.ObjectName)
	}

	if cfg.WritePLY != "" {
		err := writeFile(cfg.WritePLY, func(w io.Writer) error {
			return ply.Encode(w, f.Columns, "source "+cfg.PLYPath)
		})
		if err != nil {
			return nil, err
		}
		logger.Info("re-encoded records", zap.String("path", cfg.WritePLY))
	}

	return obj, nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "plyimport",
		Usage:     "Builds a point cloud object with color and velocity attributes from a motion ply file",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to importer yaml config",
			},
			&cli.StringFlag{
				Name:  "ply",
				Usage: "path to motion ply file, overrides ply_path",
			},
			&cli.StringFlag{
				Name:  "object",
				Usage: "name of the point cloud object",
				Value: scene.DefaultObjectName,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "path to write the point cloud mesh as ply",
			},
			&cli.StringFlag{
				Name:  "rap",
				Usage: "path to write the point cloud as a rap recording",
			},
			&cli.StringFlag{
				Name:  "write-ply",
				Usage: "path to re-encode the source records in their original layout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
			&cli.BoolFlag{
				Name: "dev",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "path to write json logs to instead of stderr",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := configFromContext(c)
			if err != nil {
				return err
			}

			logger, err := newLogger(c.App.ErrWriter, cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()
			logger = logger.With(zap.String("file", cfg.PLYPath))

			obj, err := importCloud(cfg, logger)
			if err != nil {
				return err
			}

			if cfg.OutPLY != "" {
				if err := writeFile(cfg.OutPLY, func(w io.Writer) error { return scene.WritePLY(w, obj) }); err != nil {
					return err
				}
				logger.Info("wrote mesh", zap.String("path", cfg.OutPLY))
			}

			if cfg.OutRAP != "" {
				if err := writeFile(cfg.OutRAP, func(w io.Writer) error { return scene.WriteRecording(w, obj) }); err != nil {
					return err
				}
				logger.Info("wrote recording", zap.String("path", cfg.OutRAP))
			}

			fmt.Fprintf(c.App.Writer, "Created %s with %d points (%s)\n", obj.Name, len(obj.Positions), attributeNames(obj))
			return nil
		},
	}
}

func attributeNames(obj *scene.Object) string {
	names := "position"
	for _, a := range obj.Attributes {
		names += ", " + a.Name
	}
	return names
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := newApp(stdout, stderr).Run(args); err != nil {
		fmt.Fprintf(stderr, "plyimport: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
