package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/almanac/internal/mcpserver"
	"github.com/papapumpkin/almanac/internal/telemetry"
	"github.com/papapumpkin/almanac/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the almanac tools over MCP",
	Long: `Starts an MCP server over SSE exposing the four_pillars, solar_terms,
nine_star and positions tools. Defaults for offset, day boundary and
ayanamsa come from the configuration.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8392, "port to listen on")
	serveCmd.Flags().String("telemetry", "", "append a JSONL event per tool call to this file")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	printer := ui.New()

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var emitter *telemetry.Emitter
	if path, _ := cmd.Flags().GetString("telemetry"); path != "" {
		if emitter, err = telemetry.NewEmitter(path); err != nil {
			return err
		}
		defer func() { log.ErrIfFail(emitter.Close) }()
	}

	offset := s.cfg.UTCOffsetMinutes
	srv := mcpserver.NewServer(s.engine, s.cfg.Server.Port, &mcpserver.Config{
		OffsetMinutes: &offset,
		Boundary:      s.cfg.Boundary(),
		Ayanamsa:      s.cfg.AyanamsaMode(),
		Emitter:       emitter,
	})

	ctx, cancel := setupSignalContext(cmd.Context(), printer)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	printer.Banner(Version)
	printer.Success(fmt.Sprintf("serving MCP on http://%s/sse", srv.Addr()))

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	return srv.Stop(stopCtx)
}
