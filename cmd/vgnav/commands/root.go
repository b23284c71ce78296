// Package commands implements the vgnav command line.
//
// Settings are resolved with this precedence, highest first:
//
//  1. command line flags (--routes, --addr, ...)
//  2. environment variables prefixed with VGNAV_ (VGNAV_ROUTES, VGNAV_DIST, ...)
//  3. the config file given with --config, or .vgnav.yml in the working directory
//  4. flag defaults
//
// A .env file in the working directory is loaded into the environment first.
package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vugu/vgnav"
)

const defaultConfigFile = ".vgnav.yml"

// app is the state shared by all commands of one root command.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {

	a := &app{
		v:      viper.New(),
		logger: slog.New(slog.DiscardHandler),
	}

	cmd := &cobra.Command{
		Use:   "vgnav",
		Short: "Route tooling for single-page Go applications",
		Long: `vgnav works with the route table of a single-page application.

It generates route tables from a pages directory, resolves paths the way the
in-browser dispatcher does and serves the built application with client
routes falling back to the application shell.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default "+defaultConfigFile+" if present)")
	pf.String("routes", "routes.yml", "route configuration file")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	must(a.v.BindPFlag("routes", pf.Lookup("routes")))
	must(a.v.BindPFlag("verbose", pf.Lookup("verbose")))

	cmd.AddCommand(
		newGenCmd(a),
		newMatchCmd(a),
		newRoutesCmd(a),
		newServeCmd(a),
		NewVersionCmd(),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	a.v.SetEnvPrefix("VGNAV")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	switch {
	case cfgFile != "":
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return err
		}
	default:
		if _, err := os.Stat(defaultConfigFile); err == nil {
			a.v.SetConfigFile(defaultConfigFile)
			if err := a.v.ReadInConfig(); err != nil {
				return err
			}
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if f := a.v.ConfigFileUsed(); f != "" {
		a.logger.Debug("using config file", "file", f)
	}

	return nil
}

// loadRoutes reads the configured route file.
func (a *app) loadRoutes() (*vgnav.RouteTable, error) {
	name := a.v.GetString("routes")
	rt, err := vgnav.LoadRoutesFile(name)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("routes loaded", "file", name, "count", rt.Len())
	return rt, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
