// Package cli provides storefrontctl, the operator command line for the
// storefront's stored catalog, gateway settings and event stream.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"storefront/config"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitSuccess  = 0
	ExitInternal = 1
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	out     io.Writer

	// set by tests to skip opening the configured backend
	backend store.ClosableBackend

	jsonOutput bool
	debug      bool
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{out: os.Stdout}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI. Cancelling ctx stops long-running commands.
func (c *CLI) Execute(ctx context.Context) int {
	if err := c.rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInternal
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Operate the credit storefront",
		Long: `storefrontctl reads and edits the storefront's stored records
(catalog and gateway settings), sends test WhatsApp messages and tails
the order event stream.

Configuration comes from the same environment variables as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug logs")

	cmd.AddCommand(c.newProductsCmd())
	cmd.AddCommand(c.newSettingsCmd())
	cmd.AddCommand(c.newSendCmd())
	cmd.AddCommand(c.newEventsCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	if c.cfg == nil {
		c.cfg = config.Load()
	}

	level := "warn"
	if c.debug {
		level = "debug"
	}
	return util.InitLogger(c.cfg.Server.Env, level)
}

// openPersistence opens the configured backend. The returned func closes it.
func (c *CLI) openPersistence() (*store.Persistence, func(), error) {
	defaults := models.Settings{
		WhatsAppAPIKey: c.cfg.WhatsApp.APIKey,
		SenderPhone:    c.cfg.WhatsApp.SenderPhone,
		WelcomeCredits: c.cfg.WhatsApp.WelcomeCredits,
	}

	if c.backend != nil {
		return store.NewPersistence(c.backend, defaults), func() {}, nil
	}

	backend, err := store.OpenBackend(c.cfg.Storage.Driver, c.cfg.Storage.DatabaseURL, store.RedisOptions{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return store.NewPersistence(backend, defaults), func() { _ = backend.Close() }, nil
}

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
