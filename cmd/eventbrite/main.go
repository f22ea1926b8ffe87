package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/gearplug/eventbrite-go/internal/config"
	"github.com/gearplug/eventbrite-go/internal/fakeapi"
	"github.com/gearplug/eventbrite-go/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	apiURL  string
	authURL string
	token   string
	debug   bool
	useFake bool

	fake *fakeapi.Server
)

const requestTimeout = 30 * time.Second

func main() {
	cmd := NewRootCmd()
	err := cmd.Execute()
	stopFake()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "eventbrite",
		Short:         "Eventbrite API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			level := cfg.Level()
			if debug {
				level = zerolog.DebugLevel
			}
			logger.Init("eventbrite-cli", level, logger.Format(cfg.LogFormat))
			log.Debug().Msg("debug logging enabled")

			if useFake && fake == nil {
				fake = fakeapi.New()
				log.Info().Str("url", fake.Root()).Msg("fake Eventbrite API started")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			stopFake()
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (default from EVENTBRITE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "", "OAuth base URL (default from EVENTBRITE_AUTH_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "OAuth access token (default from EVENTBRITE_ACCESS_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&useFake, "fake", false, "Serve requests from an in-process fake API")

	rootCmd.AddCommand(newAuthURLCmd())
	rootCmd.AddCommand(newExchangeCodeCmd())
	for _, c := range simpleCmds() {
		rootCmd.AddCommand(c)
	}
	for _, c := range orgCmds() {
		rootCmd.AddCommand(c)
	}
	for _, c := range idCmds() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(newCreateEventCmd())
	rootCmd.AddCommand(newCreateWebhookCmd())
	rootCmd.AddCommand(newDeleteWebhookCmd())
	rootCmd.AddCommand(newRequestCmd())

	return rootCmd
}

func stopFake() {
	if fake != nil {
		fake.Close()
		fake = nil
	}
}

// newClient builds a client from the environment, overridden by the
// persistent flags and, with --fake, pointed at the in-process fake.
func newClient() (*client.Client, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if authURL != "" {
		cfg.AuthURL = authURL
	}
	if token != "" {
		cfg.AccessToken = token
	}
	if fake != nil {
		cfg.APIURL = fake.APIURL()
		cfg.AuthURL = fake.AuthURL()
		if cfg.AccessToken == "" {
			cfg.AccessToken = fakeapi.Token
		}
	}
	cfg.Debug = cfg.Debug || debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.NewClient()
}

// call runs fn with a fresh client and a bounded context, then prints the
// result.
func call(cmd *cobra.Command, name string, fn func(ctx context.Context, c *client.Client) (*client.Result, error)) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	res, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		ev := log.Error().Err(err).Dur("elapsed", elapsed)
		if k := client.KindOf(err); k != 0 {
			ev = ev.Stringer("kind", k)
		}
		ev.Msg(name + " failed")
		return err
	}
	log.Debug().Dur("elapsed", elapsed).Msg(name + " completed")
	return printResult(cmd.OutOrStdout(), res)
}

// printResult writes JSON payloads indented and anything else verbatim.
func printResult(w io.Writer, res *client.Result) error {
	if res == nil {
		_, err := fmt.Fprintln(w, "No content")
		return err
	}
	if !res.JSON {
		_, err := fmt.Fprintln(w, res.Text())
		return err
	}
	b, err := json.MarshalIndent(res.Value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// parsePairs turns repeated key=value flags into url.Values.
func parsePairs(flag string, pairs []string) (url.Values, error) {
	out := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s expects key=value, got %q", flag, p)
		}
		out.Add(k, v)
	}
	return out, nil
}

func queryOption(pairs []string) ([]client.RequestOption, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q, err := parsePairs("query", pairs)
	if err != nil {
		return nil, err
	}
	return []client.RequestOption{client.WithQuery(q)}, nil
}
