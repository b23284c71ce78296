package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vugu/vgnav/rgen"
)

func newGenCmd(a *app) *cobra.Command {

	var (
		packageName string
		recursive   bool
		quiet       bool
		yamlOut     string
	)

	cmd := &cobra.Command{
		Use:   "gen [dir...]",
		Short: "Generate route tables from pages directories",
		Long: `Generate scans each pages directory (the current directory by default) and
writes ` + rgen.OutputFileName + ` with the routes implied by the file layout:
index.vugu serves its directory, [id].vugu is the parameter :id.

With --yaml the routes are written as a route configuration file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {

			if len(args) == 0 {
				args = []string{"."} // default to current dir
			}

			if packageName != "" && len(args) > 1 {
				return errors.New("-p is only valid with a single directory, either don't use -p or only specify one dir")
			}
			if yamlOut != "" && len(args) > 1 {
				return errors.New("--yaml is only valid with a single directory")
			}

			for _, arg := range args {

				dir, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("converting %q to absolute path: %w", arg, err)
				}

				if !quiet {
					a.logger.Info("processing routes", "dir", arg)
				}

				g := rgen.New().
					SetDir(dir).
					SetPackageName(packageName).
					SetRecursive(recursive).
					SetLogger(a.logger)

				if yamlOut != "" {
					err = writeYAMLRoutes(g, yamlOut)
				} else {
					err = g.Generate()
				}
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&packageName, "package", "p", "", "package name of the generated file (default: directory name)")
	f.BoolVarP(&recursive, "recursive", "r", false, "recursively process subdirectories")
	f.BoolVarP(&quiet, "quiet", "q", false, "only print information upon error")
	f.StringVar(&yamlOut, "yaml", "", "write a route configuration file instead of Go code")

	return cmd
}

func writeYAMLRoutes(g *rgen.Generator, name string) error {

	f, err := os.Create(name)
	if err != nil {
		return err
	}

	err = g.WriteYAML(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
