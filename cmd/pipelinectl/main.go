/*
pipelinectl is a small demonstration binary that wires every piece of the
datapipeline module together: a Proxy, a DataLayer, and a full pipeline
wrapper stack in front of a real net/http Adapter. It exists to exercise
the module end to end, the way the teacher's cmd/skipper wires routing,
filters, and a proxy into one running binary.

For the list of command line options, run:

	pipelinectl fetch --help
*/
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pipelinectl",
		Short: "Drive the datapipeline request/response engine from the command line",
	}

	root.AddCommand(newFetchCommand())
	return root
}

func newFetchCommand() *cobra.Command {
	var (
		path   string
		method string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Build a Request from a DataDefinition and dispatch it through the full pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = log.InfoLevel
			}
			logger := log.StandardLogger()
			logger.SetLevel(level)

			pipe, err := newDemoPipeline(cfg, logger)
			if err != nil {
				return err
			}

			if method == "" {
				method = "GET"
			}

			req, err := pipe.layer.CreateRequest(pipelineDataDefinition(cfg, path, method), nil, nil)
			if err != nil {
				return fmt.Errorf("creating request: %w", err)
			}

			ctx := cmd.Context()
			response, err := pipe.fetch(ctx, req)
			if err != nil {
				return fmt.Errorf("fetch failed: %w", err)
			}

			logger.WithFields(log.Fields{
				"status": response.Status,
				"cached": response.Meta.Cached,
			}).Info("pipelinectl: fetch complete")
			fmt.Printf("%d %s\n%v\n", response.Status, response.StatusText, response.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "request path, may contain :token segments")
	cmd.Flags().StringVar(&method, "method", "GET", "HTTP method")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
