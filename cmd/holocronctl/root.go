package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgo/holocron/internal/bootstrap"
	"github.com/forgo/holocron/internal/config"
)

// envPrefix namespaces variables read by the CLI (HOLOCRON_DATABASE_URL, ...)
const envPrefix = "HOLOCRON"

// cli carries state shared by every subcommand
type cli struct {
	v          *viper.Viper
	out        io.Writer
	configFile string
	logger     *slog.Logger
}

func newCLI(out io.Writer) *cli {
	c := &cli{v: viper.New(), out: out}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()
	return c
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := newCLI(out)

	root := &cobra.Command{
		Use:   "holocronctl",
		Short: "Operate a Holocron catalog database",
		Long: `holocronctl manages the storage behind the Holocron API.

Settings come from flags, then HOLOCRON_* environment variables, then the
optional config file, then the plain variables the server reads.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (YAML or .env)")
	flags.String("db-driver", "", "storage backend: surrealdb, postgres or sqlite")
	flags.String("db-url", "", "DATABASE_URL for the sql backends")

	// Bind flags to viper
	cobra.CheckErr(c.v.BindPFlag("DB_DRIVER", flags.Lookup("db-driver")))
	cobra.CheckErr(c.v.BindPFlag("DATABASE_URL", flags.Lookup("db-url")))

	root.AddCommand(
		newMigrateCmd(c),
		newSeedCmd(c),
		newFavoritesCmd(c),
	)
	return root
}

// initConfig loads .env and the optional config file
func (c *cli) initConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", c.configFile, err)
		}
	}
	return nil
}

// lookup resolves a setting through viper, then the unprefixed environment
func (c *cli) lookup(key string) string {
	if value := c.v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// config builds the application configuration. Only the storage settings
// are validated; the CLI never serves requests or issues tokens.
func (c *cli) config() (*config.Config, error) {
	cfg := config.FromLookup(c.lookup)
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore validates configuration, builds the command's logger on stderr
// and connects to the configured backend
func (c *cli) openStore(cmd *cobra.Command) (*bootstrap.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	c.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	return bootstrap.Open(cmd.Context(), cfg.Database, c.logger)
}
