package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/provide-io/moodnft/internal/config"
	"github.com/provide-io/moodnft/internal/shell"
	"github.com/provide-io/moodnft/pkg/logging"
	"github.com/provide-io/moodnft/pkg/nft"
	"github.com/provide-io/moodnft/pkg/nft/core"
	"github.com/provide-io/moodnft/pkg/nft/metadata"
)

const version = "0.1.0"

type globalFlags struct {
	configPath string
	logLevel   string
}

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var versionFlag bool

	root := &cobra.Command{
		Use:           "moodnft",
		Short:         "Mint mood tokens and render their metadata URIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd)
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to config.toml (defaults to the user config dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json:<level>)")
	root.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	root.AddCommand(newMintCmd(flags), newRenderCmd(flags), newShellCmd(flags))
	return root
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "moodnft %s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", getBuildTimestamp())
}

// openCollection loads configuration and builds a fresh collection.
func openCollection(cmd *cobra.Command, flags *globalFlags) (*nft.Collection, hclog.Logger, error) {
	settings := logging.Resolve(flags.logLevel)
	logger := logging.NewLogger("moodnft", settings, cmd.ErrOrStderr())
	logger.Debug("Log level", "level", settings.Level, "source", settings.Source)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("📖 Configuration loaded", "name", cfg.Name, "symbol", cfg.Symbol)

	coll, err := nft.NewCollection(cfg.Options(), logger)
	if err != nil {
		return nil, nil, err
	}
	return coll, logger, nil
}

func newMintCmd(flags *globalFlags) *cobra.Command {
	var (
		owner   string
		count   int
		showURI bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens into a fresh collection and print their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			coll, _, err := openCollection(cmd, flags)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				id, err := coll.Mint(owner)
				if err != nil {
					return err
				}
				if !showURI {
					fmt.Fprintln(cmd.OutOrStdout(), id)
					continue
				}
				uri, err := coll.TokenURI(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, uri)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Receiver of the minted tokens (required)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of tokens to mint")
	cmd.Flags().BoolVar(&showURI, "uri", false, "Print the token URI next to each id")
	if err := cmd.MarkFlagRequired("owner"); err != nil {
		panic(err)
	}
	return cmd
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var (
		owner  string
		mint   int
		decode bool
		field  string
	)

	cmd := &cobra.Command{
		Use:   "render ID",
		Short: "Print the metadata URI of a token",
		Long: `Mint --mint tokens into a fresh collection, then print the metadata URI
of token ID. --decode prints the JSON document instead, and --field
extracts a single value from it using a gjson path such as "image" or
"attributes.0.value".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shell.ParseTokenID(args[0])
			if err != nil {
				return err
			}
			coll, logger, err := openCollection(cmd, flags)
			if err != nil {
				return err
			}
			for i := 0; i < mint; i++ {
				if _, err := coll.Mint(owner); err != nil {
					return err
				}
			}
			logger.Debug("🔍 Rendering token", "id", id, "minted", mint)
			return renderToken(cmd, coll, id, decode, field)
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "moodnft", "Receiver of the pre-minted tokens")
	cmd.Flags().IntVarP(&mint, "mint", "m", 1, "Number of tokens to mint before rendering")
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Print the decoded JSON document")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Print one field of the decoded document (gjson path)")
	return cmd
}

func renderToken(cmd *cobra.Command, coll *nft.Collection, id core.TokenID, decode bool, field string) error {
	uri, err := coll.TokenURI(id)
	if err != nil {
		return err
	}
	if !decode && field == "" {
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	}

	doc, err := metadata.Decode(uri)
	if err != nil {
		return err
	}
	if field == "" {
		fmt.Fprintln(cmd.OutOrStdout(), shell.PrettyDocument(doc))
		return nil
	}

	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("token %d: document is not valid JSON, cannot extract %q", id, field)
	}
	res := gjson.GetBytes(doc, field)
	if !res.Exists() {
		return fmt.Errorf("token %d: no field %q", id, field)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.String())
	return nil
}

func newShellCmd(flags *globalFlags) *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session against one collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, logger, err := openCollection(cmd, flags)
			if err != nil {
				return err
			}
			prompt := "moodnft> "
			if noPrompt {
				prompt = ""
			}
			logger.Info("💻 Session started", "name", coll.Name(), "symbol", coll.Symbol())
			return shell.NewSession(coll, cmd.OutOrStdout(), logger).Run(cmd.Context(), cmd.InOrStdin(), prompt)
		},
	}

	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Do not print a prompt (for piped input)")
	return cmd
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("moodnft %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
