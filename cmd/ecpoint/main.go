package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecpoint/internal/logging"
)

const cmdRoot = "ecpoint"

// cli carries the state shared by all subcommands.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop()}

	// For environment variables.
	c.v.SetEnvPrefix(cmdRoot)
	c.v.AutomaticEnv()
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	root := &cobra.Command{
		Use:               cmdRoot,
		Short:             "Find points on elliptic curves over prime fields",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML file with flag values")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", logging.FormatConsole, "log format: console, json or logfmt")
	flags.StringP("output", "o", formatText, "output format: text, json or yaml")
	c.bind(flags, "config", "log-level", "log-format", "output")

	root.AddCommand(c.findCmd(), c.curvesCmd(), c.inspectCmd(), c.promptCmd())
	return root
}

func (c *cli) bind(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		c.v.BindPFlag(name, flags.Lookup(name))
	}
}

// setup reads the config file, if any, and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		c.v.SetConfigType("yaml")
		if err := c.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	logger, err := logging.New(cmdRoot, logging.Config{
		Level:  c.v.GetString("log-level"),
		Format: c.v.GetString("log-format"),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

func main() {
	// Cobra prints the error string, so we only need to exit with a non-0
	// status
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
