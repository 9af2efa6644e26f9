// cardcheck runs the card validation service and offers the same checks
// from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jonanatree/cardcheck/internal/cardcheck"
	"github.com/jonanatree/cardcheck/internal/cardclient"
	"github.com/jonanatree/cardcheck/validator"
	"github.com/jonanatree/cardcheck/validator/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around v so tests get an isolated config.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "cardcheck",
		Short:        "Identify and validate payment card numbers.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.cardcheck.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug|info|warn|error")
	v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	def := validator.DefaultConfig()
	v.SetDefault("http.addr", def.HTTPAddr)
	v.SetDefault("expiry.tz", def.ExpiryTZ)
	v.SetDefault("fingerprint.key", def.FingerprintKey)
	v.SetDefault("shutdown.timeout", def.ShutdownTimeout)

	cmd.AddCommand(newServeCmd(v))
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBrandsCmd())
	cmd.AddCommand(newGenCmd())
	return cmd
}

// loadConfig reads an optional YAML file and CARDCHECK_* environment
// variables, e.g. CARDCHECK_HTTP_ADDR for http.addr.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".cardcheck")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("CARDCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func configFrom(v *viper.Viper) *validator.Config {
	return &validator.Config{
		HTTPAddr:        v.GetString("http.addr"),
		ExpiryTZ:        v.GetString("expiry.tz"),
		FingerprintKey:  v.GetString("fingerprint.key"),
		ShutdownTimeout: v.GetDuration("shutdown.timeout"),
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v.GetString("log.level"))
			if err != nil {
				return err
			}

			app := validator.NewApp(logger, configFrom(v))
			if err := app.Start(); err != nil {
				return fmt.Errorf("starting app: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			app.Shutdown()
			return nil
		},
	}
	cmd.Flags().String("http-addr", "", "listen address (default localhost:9090)")
	cmd.Flags().String("expiry-tz", "", "IANA timezone used for card expiry")
	v.BindPFlag("http.addr", cmd.Flags().Lookup("http-addr"))
	v.BindPFlag("expiry.tz", cmd.Flags().Lookup("expiry-tz"))
	return cmd
}

func newCheckCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "check <number>...",
		Short: "Validate card numbers locally or against a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cli *cardclient.Client
			if server != "" {
				cli = cardclient.New(server, nil)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			invalid := 0
			for _, raw := range args {
				res, err := checkOne(cmd.Context(), cli, raw)
				if err != nil {
					return err
				}
				verdict := "valid"
				if !res.IsValid {
					verdict = "invalid"
					invalid++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", res.Masked, res.Brand, verdict)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d numbers invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "base URL of a cardcheck server; validates locally when empty")
	return cmd
}

func checkOne(ctx context.Context, cli *cardclient.Client, raw string) (models.NumberResult, error) {
	if cli == nil {
		res := cardcheck.Validate(raw)
		return models.NumberResult{
			Brand:   res.Brand,
			IsValid: res.IsValid,
			Masked:  cardcheck.MaskPAN(raw),
			Last4:   cardcheck.LastN(cardcheck.Normalize(raw), 4),
		}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return cli.Validate(ctx, raw)
}

func newBrandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "Print the brand table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BRAND\tLENGTHS\tCODE\tPATTERN")
			for _, r := range cardcheck.Rules() {
				fmt.Fprintf(w, "%s\t%s\t%s(%d)\t%s\n", r.Brand, joinInts(r.Lengths), r.CodeName, r.CodeSize, r.Pattern)
			}
			return w.Flush()
		},
	}
}

func newGenCmd() *cobra.Command {
	var brand string
	var length int

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print a random Luhn-valid test number (never a real card)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := cardcheck.ParseBrand(brand)
			if err != nil {
				return err
			}
			if length == 0 {
				if r, ok := cardcheck.RuleFor(b); ok {
					length = r.Lengths[0]
				}
			}
			n, err := cardcheck.GenerateNumber(b, length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "visa", "card brand")
	cmd.Flags().IntVar(&length, "length", 0, "total digits (default: the brand's shortest accepted length)")
	return cmd
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
