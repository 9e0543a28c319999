package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/model"
	"github.com/pagoandino/capture-cli/internal/volcado"
	"github.com/pagoandino/capture-cli/pkg/bff"
	"github.com/pagoandino/capture-cli/pkg/kafka"
)

var publishUser string

var publishCmd = &cobra.Command{
	Use:   "publish <run-id>",
	Short: "Publish a completed run's payload to Kafka",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		if run.Result == nil {
			return eris.Errorf("run %s has no stored result", run.ID)
		}
		if run.Status == model.RunStatusPublished {
			return eris.Errorf("run %s is already published", run.ID)
		}

		if err := publishResults(ctx, run.Result.Results, publishUser); err != nil {
			return err
		}
		return st.MarkPublished(ctx, run.ID)
	},
}

// publishResults resolves bank, account-type, and activity codes, builds
// the integration payload, and writes it to the volcado topic keyed by the
// commerce RUT.
func publishResults(ctx context.Context, results model.ResultSet, user string) error {
	cuenta := bff.NewCuentaClient(cfg.BFF.CuentaURL, cfg.BFF.CuentaToken)
	if err := cuenta.Load(ctx); err != nil {
		return err
	}

	comercio := bff.NewComercioClient(cfg.BFF.ComercioURL, cfg.BFF.ActivitiesPath, cfg.BFF.MCCPath, cfg.BFF.ComercioToken, cfg.BFF.FuzzyCutoff)
	if err := comercio.Load(ctx); err != nil {
		return err
	}

	builder := volcado.NewBuilder(cuenta, comercio, user)
	payload, err := builder.Build(ctx, results)
	if err != nil {
		return err
	}

	pub := kafka.NewPublisher(kafka.Config{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		ClientID: cfg.Kafka.ClientID,
		Username: cfg.Kafka.Username,
		Password: cfg.Kafka.Password,
		TLS:      cfg.Kafka.TLS,
	})
	defer pub.Close() //nolint:errcheck

	if err := pub.Publish(ctx, payload.IntegrationCommerce.CommerceRut, payload); err != nil {
		return err
	}

	zap.L().Info("volcado publicado",
		zap.String("commerce_rut", payload.IntegrationCommerce.CommerceRut),
		zap.String("topic", cfg.Kafka.Topic),
	)
	return nil
}

func init() {
	publishCmd.Flags().StringVar(&publishUser, "user", "capture-cli", "operator recorded on the published entities")
	rootCmd.AddCommand(publishCmd)
}
