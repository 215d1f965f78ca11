// Package cli provides the Cobra-based CLI for inventory-cli.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"inventory_manager/config"
	"inventory_manager/inventory"
	"inventory_manager/logger"
	"inventory_manager/store"
)

var (
	v = config.NewViper()

	rootCmd = &cobra.Command{
		Use:           "inventory-cli",
		Short:         "Products, stock intake, sales and profit tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			appConfig = cfg

			// tests inject the inventory directly
			if inventorySvc != nil {
				return nil
			}

			baseLogger, err = logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			blobs, err := store.NewStore(ctx, cfg.Store)
			if err != nil {
				baseLogger.Error("store unavailable", zap.String("kind", cfg.Store.Kind), zap.Error(err))
				return err
			}
			repo := store.NewCollections(blobs)
			svc, err := inventory.New(ctx, repo, inventory.WithLogger(logger.Named(baseLogger, "inventory")))
			if err != nil {
				_ = repo.Close()
				return err
			}

			baseLogger.Debug("store opened", zap.String("kind", cfg.Store.Kind))
			inventorySvc = svc
			closeStore = repo.Close
			return nil
		},
	}

	appConfig    config.Config
	inventorySvc *inventory.Inventory
	baseLogger   *zap.Logger
	closeStore   func() error
)

// persistent flags bound to config keys
var persistentFlags = []struct {
	key, def, usage string
}{
	{config.KeyConfig, "", "config file (yaml, json or toml)"},
	{config.KeyEnvFile, "", "env file to load (defaults to ./.env when present)"},
	{config.KeyStore, "file", "store backend: memory|file|redis|postgres|mongo"},
	{config.KeyStoreDir, "data", "directory for the file store"},
	{config.KeyRedisAddr, "", "redis address (host:port)"},
	{config.KeyRedisPassword, "", "redis password"},
	{config.KeyRedisPrefix, "inventory:", "redis key prefix"},
	{config.KeyDatabaseURL, "", "postgres connection url"},
	{config.KeyPostgresTable, "inventory_collections", "postgres table name"},
	{config.KeyMongoURI, "", "mongodb connection uri"},
	{config.KeyMongoDB, "inventory", "mongodb database"},
	{config.KeyMongoCollection, "inventory_collections", "mongodb collection"},
	{config.KeyLogLevel, "info", "log level: debug|info|warn|error"},
	{config.KeyLogFormat, "console", "log format: console|json"},
}

func init() {
	pf := rootCmd.PersistentFlags()
	for _, f := range persistentFlags {
		pf.String(f.key, f.def, f.usage)
		_ = v.BindPFlag(f.key, pf.Lookup(f.key))
	}
	pf.Int(config.KeyRedisDB, 0, "redis database number")
	_ = v.BindPFlag(config.KeyRedisDB, pf.Lookup(config.KeyRedisDB))

	rootCmd.AddCommand(shellCmd())
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for {
				fmt.Fprint(out, "inventory> ")
				line, err := r.ReadString('\n')
				if err != nil && line == "" {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				}
				resetFlags(rootCmd)
				rootCmd.SetArgs(nil)
			}
		},
	}
}

// resetFlags restores every changed flag to its default so one invocation
// does not leak into the next.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// confirm asks a y/N question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	var resp string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &resp); err != nil {
		return false
	}
	return resp == "y" || resp == "Y"
}

func shutdown() {
	if closeStore != nil {
		if err := closeStore(); err != nil && baseLogger != nil {
			baseLogger.Error("closing store failed", zap.Error(err))
		}
		closeStore = nil
	}
	if baseLogger != nil {
		_ = baseLogger.Sync()
	}
}

// Execute runs the root command and closes the store afterwards.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}
