package commands

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/models"
	"github.com/magabrotheeeer/account-messenger/internal/rabbitmq"
)

// outboundWorkerCmd читает принятые отправки из очереди и записывает их в лог.
// Здесь подключается настоящая доставка, когда она появится.
var outboundWorkerCmd = &cobra.Command{
	Use:   "outbound-worker",
	Short: "Consume accepted outbound dispatches from RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.RabbitMQ.URL == "" {
			return errors.New("RABBITMQ_URL is not set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			return err
		}
		defer conn.Close()

		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.OutboundQueues(cfg.RabbitMQ))
		if err != nil {
			return err
		}
		defer ch.Close()

		log.Info("outbound worker started", slog.String("queue", cfg.RabbitMQ.Queue))
		return rabbitmq.ConsumeMessages(ctx, ch, cfg.RabbitMQ.Queue, log, logDispatch(log))
	},
}

func logDispatch(log *slog.Logger) func([]byte) error {
	return func(body []byte) error {
		// повторная доставка не исправит тело сообщения, такие отправки отбрасываются
		var d models.Dispatch
		if err := json.Unmarshal(body, &d); err != nil {
			log.Error("dropping malformed dispatch", slog.String("body", string(body)))
			return nil
		}
		if d.Target == "" {
			log.Error("dropping dispatch without target", slog.String("dispatch_id", d.ID))
			return nil
		}
		log.Info("outbound dispatch received",
			slog.String("dispatch_id", d.ID),
			slog.String("target", d.Target),
			slog.String("message_type", d.MessageType),
			slog.Time("accepted_at", d.AcceptedAt),
		)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(outboundWorkerCmd)
}
