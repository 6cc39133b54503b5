// Command compose renders YAML layout documents to images.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BeatGlow/compose"
	"github.com/BeatGlow/compose/layout"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "compose:", err)
	os.Exit(1)
}

func newRootCommand() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:           "compose",
		Short:         "Layered image composition",
		Long:          "Compose flattens images, text and shapes described by a YAML layout into a single image.",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			compose.SetLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	l, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(l)

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return logger, nil
}

func newRenderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <layout.yaml>",
		Short: "Render a layout to an image file",
		Long: `Render loads a layout document, composites all of its layers and writes the
result. The output format follows the file extension: png, jpg, gif, bmp or tiff.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "out.png", "Output image path")

	return cmd
}

func render(path, output string) error {
	var (
		log   = compose.Logger()
		start = time.Now()
	)

	doc, err := layout.Load(path)
	if err != nil {
		return err
	}
	c, err := doc.Build()
	if err != nil {
		return err
	}
	l, err := c.Rasterize()
	if err != nil {
		return err
	}
	if err = l.Save(output); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"layout": path,
		"output": output,
		"size":   l.Bounds().Size(),
		"took":   time.Since(start).Round(time.Millisecond),
	}).Info("rendered")
	return nil
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <layout.yaml>...",
		Short: "Validate layout documents without rendering them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				doc, err := layout.Load(path)
				if err != nil {
					compose.Logger().WithError(err).Error("invalid layout")
					failed++
					continue
				}
				compose.Logger().WithFields(logrus.Fields{
					"layout": path,
					"size":   fmt.Sprintf("%dx%d", doc.Width, doc.Height),
					"layers": len(doc.Layers),
				}).Info("ok")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d layouts are invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("compose %s (commit: %s)\n", Version, GitCommit)
		},
	}
}
