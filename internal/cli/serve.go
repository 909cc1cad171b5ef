package cli

import (
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apihttp "github.com/pmsuite/pathregistry/internal/api/http"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry API for the operator panels",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()

		// The server tees its logs into the suite's log directory.
		log := e.log
		if logDir := e.reg.GetOr(paths.LogsDir, ""); logDir != "" {
			log = logging.NewWithLogDir(logging.Config{
				Level:       e.cfg.Logging.Level,
				Development: e.cfg.Logging.Development,
				OutputPaths: []string{"stderr"},
			}, logDir)
		}

		server := apihttp.NewServer(apihttp.Deps{
			Registry: e.reg,
			Checker:  e.checker,
			Repairer: e.repairer,
			Reporter: e.reporter,
			Store:    e.store,
			Metrics:  e.metrics,
			Logger:   log,
		})

		port := e.cfg.HTTP.Port
		if flagPort != "" {
			port = flagPort
		}
		addr := net.JoinHostPort(e.cfg.HTTP.Host, port)

		log.Info("serving registry API",
			zap.String("addr", addr),
			zap.String("root", e.booted.Root))
		return server.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "listen port (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}
