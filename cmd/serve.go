package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/api"
	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/store"
)

var listenAddr string // Address for the HTTP API

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling simulator over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		defaults, err := loadDefaults(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg, err := resolveConfig(cmd.Flags(), defaults)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var runs *store.RunStore
		if dbPath != "" {
			if runs, err = store.Open(dbPath); err != nil {
				logrus.Fatalf("%v", err)
			}
			defer func() { _ = runs.Close() }()
		}

		app := api.NewApp(cfg, runs)
		logrus.Infof("Serving %d policies on %s (defaults %+v)", len(sim.PolicyNames()), listenAddr, cfg)
		if err := app.Listen(listenAddr); err != nil {
			logrus.Fatalf("HTTP server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":9095", "Listen address")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "Store every run in this SQLite database")
}
