package cli

import (
	"context"
	"errors"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
)

func (c *CLI) newSendCmd() *cobra.Command {
	var to, message string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a test WhatsApp message with the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persistence, closeFn, err := c.openPersistence()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(cmd)
			app, err := service.NewApp(ctx, persistence, c.senders(), nil)
			if err != nil {
				return err
			}
			if err := app.Settings.SendTestMessage(ctx, to, message); err != nil {
				return err
			}
			c.printf("Message sent to %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient phone number")
	cmd.Flags().StringVar(&message, "message", "Test message from storefrontctl", "message body")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (c *CLI) senders() service.SenderFactory {
	return service.WhatsAppSenders(c.cfg.WhatsApp.BaseURL)
}

func (c *CLI) newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Tail the order event stream",
		Long: `Print order lifecycle events from the Kafka topic until interrupted.
Uses KAFKA_BROKERS, KAFKA_TOPIC_ORDER_EVENTS and KAFKA_CONSUMER_GROUP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			consumer := broker.NewConsumer(c.cfg.Kafka.Brokers, c.cfg.Kafka.TopicOrder, c.cfg.Kafka.ConsumerGroup)
			defer consumer.Close()

			err := consumer.StartConsuming(commandContext(cmd), c.printEvent)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (c *CLI) printEvent(_ context.Context, msg kafka.Message) error {
	base, event, err := broker.DecodeEvent(msg.Value)
	if err != nil {
		// undecodable events are skipped, not retried
		c.printf("%s\tundecodable event: %v\n", string(msg.Key), err)
		return nil
	}

	if c.jsonOutput {
		return c.printJSON(event)
	}

	ts := base.Timestamp.Format("2006-01-02 15:04:05")
	switch e := event.(type) {
	case *models.OrderPlacedEvent:
		c.printf("%s\t%s\torder=%s product=%s buyer=%q notified=%t\n",
			ts, base.EventType, e.OrderID, e.ProductID, e.BuyerName, e.Notified)
	case *models.OrderStatusChangedEvent:
		c.printf("%s\t%s\torder=%s status=%s\n", ts, base.EventType, e.OrderID, e.Status)
	case *models.CreditsAddedEvent:
		c.printf("%s\t%s\torder=%s user=%s credits=%d balance=%d\n",
			ts, base.EventType, e.OrderID, e.UserID, e.Credits, e.Balance)
	default:
		c.printf("%s\t%s\n", ts, base.EventType)
	}
	return nil
}
