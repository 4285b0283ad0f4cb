package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/logled"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/script"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/led-service/pkg/ledpb"
	"github.com/quentinrf/plant-monitor/services/led-service/pkg/tlsconfig"
)

type options struct {
	addr    string
	timeout time.Duration
	tlsCert string
	tlsKey  string
	tlsCA   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "ledctl",
		Short:        "Control the LED service",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.addr, "addr", envOr("LED_SERVICE_ADDR", "localhost:50052"), "LED service address")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-call timeout")
	flags.StringVar(&opts.tlsCert, "tls-cert", os.Getenv("TLS_CERT"), "client certificate for mTLS")
	flags.StringVar(&opts.tlsKey, "tls-key", os.Getenv("TLS_KEY"), "client key for mTLS")
	flags.StringVar(&opts.tlsCA, "tls-ca", os.Getenv("TLS_CA"), "CA certificate for mTLS")

	root.AddCommand(
		newLEDCmd(opts, "on", "Switch an LED on", func(ctx context.Context, c ledpb.LEDServiceClient, id uint32) error {
			_, err := c.LEDOn(ctx, wrapperspb.UInt32(id))
			return err
		}),
		newLEDCmd(opts, "off", "Switch an LED off", func(ctx context.Context, c ledpb.LEDServiceClient, id uint32) error {
			_, err := c.LEDOff(ctx, wrapperspb.UInt32(id))
			return err
		}),
		newLEDCmd(opts, "blink", "Blink an LED once", func(ctx context.Context, c ledpb.LEDServiceClient, id uint32) error {
			_, err := c.Blink(ctx, wrapperspb.UInt32(id))
			return err
		}),
		newRunCmd(opts),
		newScriptCmd(opts),
		newHistoryCmd(opts),
		newLocalCmd(),
	)
	return root
}

func newLEDCmd(opts *options, use, short string, call func(context.Context, ledpb.LEDServiceClient, uint32) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <led>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLED(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd.Context(), opts, func(ctx context.Context, c ledpb.LEDServiceClient) error {
				return call(ctx, c, id)
			})
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var cycles uint32

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the native blink loop on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), opts, func(ctx context.Context, c ledpb.LEDServiceClient) error {
				resp, err := c.Run(ctx, wrapperspb.UInt32(cycles))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().Uint32Var(&cycles, "cycles", 0, "number of blinks (0 = server default)")
	return cmd
}

func newScriptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "script [file.js]",
		Short: "Run a script on the server (bundled blinky.js when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{}
			if len(args) == 1 {
				src, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				fields["name"] = filepath.Base(args[0])
				fields["source"] = string(src)
			}
			req, err := structpb.NewStruct(fields)
			if err != nil {
				return err
			}

			return withClient(cmd.Context(), opts, func(ctx context.Context, c ledpb.LEDServiceClient) error {
				resp, err := c.RunScript(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded LED events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := structpb.NewStruct(map[string]any{
				"start_time": time.Now().Add(-since).Unix(),
			})
			if err != nil {
				return err
			}

			return withClient(cmd.Context(), opts, func(ctx context.Context, c ledpb.LEDServiceClient) error {
				resp, err := c.GetHistory(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().DurationVar(&since, "since", time.Hour, "how far back to look")
	return cmd
}

func newLocalCmd() *cobra.Command {
	var (
		driverType string
		leds       int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "local [file.js]",
		Short: "Run a script in-process against a local driver (bundled blinky.js when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source := script.BlinkyName, script.Blinky
			if len(args) == 1 {
				src, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				name, source = filepath.Base(args[0]), string(src)
			}

			driver, err := localDriver(driverType, leds, verbose)
			if err != nil {
				return err
			}
			defer driver.Close()

			summary, err := script.NewHost(driver).Run(cmd.Context(), name, source)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d blinks (%d on, %d off) in %s\n",
				summary.Source, summary.Blinks(), summary.OnCalls, summary.OffCalls, summary.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&driverType, "driver", "log", `local driver: "log" or "mock"`)
	cmd.Flags().IntVar(&leds, "leds", domain.DefaultLEDCount, "number of LEDs")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every transition")
	return cmd
}

func localDriver(kind string, leds int, verbose bool) (ports.LEDDriver, error) {
	if leds <= 0 {
		return nil, domain.ErrInvalidLEDCount
	}
	switch kind {
	case "log":
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		return logled.New(log.Logger.Level(level), leds), nil
	case "mock":
		return mock.NewFakeLEDBank(leds), nil
	}
	return nil, fmt.Errorf("unknown driver %q", kind)
}

func withClient(ctx context.Context, opts *options, fn func(context.Context, ledpb.LEDServiceClient) error) error {
	creds := insecure.NewCredentials()
	if opts.tlsCert != "" {
		tlsCfg, err := tlsconfig.LoadClientTLS(opts.tlsCert, opts.tlsKey, opts.tlsCA)
		if err != nil {
			return err
		}
		creds = credentials.NewTLS(tlsCfg)
	}

	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("dial %s: %w", opts.addr, err)
	}
	defer conn.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	return fn(ctx, ledpb.NewLEDServiceClient(conn))
}

func parseLED(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid led %q: %w", s, domain.ErrBadArgument)
	}
	return uint32(n), nil
}

func printJSON(w io.Writer, m proto.Message) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
