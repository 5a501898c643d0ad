package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/analytics"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/chat"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/privacy"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server with REST API, chat, and WebSocket",
	Long:  `Starts the matrizlegal server exposing the corpus over a REST API with document listing, search, grounded chat, privacy acceptance, and usage analytics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		lib := buildLibrary(cfg, database)
		scorer := buildScorer(cfg, lib)

		provider, err := buildProvider(cfg)
		if err != nil {
			return err
		}

		chatSvc := chat.NewService(lib, scorer, provider)
		chatSvc.SetLimits(cfg.Chat.MinQueryLength, cfg.Chat.MaxSources)
		chatSvc.Assembler().SetBudgets(cfg.Chat.GeneralBudget, cfg.Chat.FullDocBudget)

		events := analytics.NewStore(database)

		port := serverPort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := server.New(server.Config{
			Port:           port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AdminToken:     cfg.Server.AdminToken,
			ProviderName:   string(cfg.Provider),
		}, lib, scorer, chatSvc, events)

		r := srv.Router()
		privacy.RegisterRoutes(r, privacy.NewStore(database))
		analytics.RegisterRoutes(r, events, cfg.Server.AdminToken)

		// Warm the index so the first request does not pay for the scan.
		docs, err := lib.Documents(context.Background())
		if err != nil {
			return fmt.Errorf("scanning corpus: %w", err)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "matrizlegal server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Corpus:    %s\n", cfg.CorpusDir)
		fmt.Fprintf(os.Stderr, "  Documents: %d\n", len(docs))
		fmt.Fprintf(os.Stderr, "  Provider:  %s\n", cfg.Provider)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
