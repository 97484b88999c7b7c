package main

import (
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	csi "github.com/danielgatis/go-csi"
)

const (
	Name  = "csidump"
	Usage = "Split text with ANSI CSI sequences into tokens and print them"

	FlagFormat  = "format"
	FlagDetail  = "detail"
	FlagVerify  = "verify"
	FlagNoColor = "no-color"
	FlagDebug   = "debug"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      Name,
		Usage:     Usage,
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagFormat,
				Aliases: []string{"f"},
				Value:   FormatList,
				Usage:   "output format: list, json, plain or raw",
				EnvVars: []string{"CSIDUMP_FORMAT"},
			},
			&cli.StringFlag{
				Name:    FlagDetail,
				Value:   string(csi.SnapshotDetailValues),
				Usage:   "json detail level: text, values or full",
				EnvVars: []string{"CSIDUMP_DETAIL"},
			},
			&cli.BoolFlag{
				Name:  FlagVerify,
				Usage: "fail unless rendering the parsed values reproduces the input",
			},
			&cli.BoolFlag{
				Name:  FlagNoColor,
				Usage: "disable colored output",
			},
			&cli.BoolFlag{
				Name:    FlagDebug,
				Usage:   "enable debug logging",
				EnvVars: []string{"CSIDUMP_DEBUG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool(FlagDebug) {
				log.SetLevel(log.DebugLevel)
			}
			if ctx.Bool(FlagNoColor) {
				color.NoColor = true
			}
			return nil
		},
		Action: func(ctx *cli.Context) error {
			d, err := newDumper(ctx.App.Writer, ctx.String(FlagFormat), ctx.String(FlagDetail), ctx.Bool(FlagVerify))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			names := ctx.Args().Slice()
			if len(names) == 0 {
				names = []string{stdinName}
			}

			for _, name := range names {
				data, err := readInput(ctx.App.Reader, name)
				if err != nil {
					return err
				}
				if err := d.dump(name, data); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("csidump failed")
	}
}
