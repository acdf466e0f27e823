package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/spf13/cobra"
)

func (c *CLI) newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the stored catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persistence, closeFn, err := c.openPersistence()
			if err != nil {
				return err
			}
			defer closeFn()

			products, err := persistence.LoadProducts(commandContext(cmd))
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(products)
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tCREDITS\tVALIDITY")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dd\n", p.ID, p.Name, p.Price, p.Credits, p.ValidityDays)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the stored gateway settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persistence, closeFn, err := c.openPersistence()
			if err != nil {
				return err
			}
			defer closeFn()

			settings, err := persistence.LoadSettings(commandContext(cmd))
			if err != nil {
				return err
			}
			c.printSettings(settings)
			return nil
		},
	}

	cmd.AddCommand(c.newSettingsSetCmd())
	return cmd
}

func (c *CLI) newSettingsSetCmd() *cobra.Command {
	var (
		apiKey         string
		senderPhone    string
		welcomeCredits int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the stored gateway settings",
		Long: `Update one or more gateway settings. Flags that are not given keep
their stored value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persistence, closeFn, err := c.openPersistence()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(cmd)
			settings, err := persistence.LoadSettings(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("api-key") {
				settings.WhatsAppAPIKey = apiKey
			}
			if flags.Changed("sender-phone") {
				settings.SenderPhone = senderPhone
			}
			if flags.Changed("welcome-credits") {
				settings.WelcomeCredits = welcomeCredits
			}

			if err := service.ValidateSettings(settings); err != nil {
				return err
			}
			if err := persistence.SaveSettings(ctx, settings); err != nil {
				return err
			}

			c.printSettings(settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "WhatsApp gateway API key")
	cmd.Flags().StringVar(&senderPhone, "sender-phone", "", "admin phone receiving new order notices")
	cmd.Flags().IntVar(&welcomeCredits, "welcome-credits", 0, "credits granted to a new user")
	return cmd
}

func (c *CLI) printSettings(settings models.Settings) {
	masked := settings
	masked.WhatsAppAPIKey = maskKey(settings.WhatsAppAPIKey)
	if c.jsonOutput {
		_ = c.printJSON(masked)
		return
	}
	c.printf("API key:         %s\n", masked.WhatsAppAPIKey)
	c.printf("Sender phone:    %s\n", masked.SenderPhone)
	c.printf("Welcome credits: %d\n", masked.WelcomeCredits)
}

// maskKey keeps the last four characters of key
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
