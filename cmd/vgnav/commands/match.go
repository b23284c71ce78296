package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vugu/vgnav"
)

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match path...",
		Short: "Resolve paths against the route table",
		Long: `Match resolves each path the way the in-browser dispatcher does and prints
the path, the view and its parameters, or "not found".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			rt, err := a.loadRoutes()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				p, _ := vgnav.SplitPathQuery(arg)
				m, found := vgnav.Match(p, rt)
				if !found {
					fmt.Fprintf(out, "%s\tnot found\n", p)
					continue
				}
				fmt.Fprintf(out, "%s\t%s%s\n", p, m.ViewID, formatParams(m.Params))
			}

			return nil
		},
	}
}

// formatParams renders params as " k=v" pairs sorted by key.
func formatParams(ps vgnav.Params) string {
	keys := make([]string, 0, len(ps))
	for k := range ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "\t%s=%s", k, ps[k])
	}
	return sb.String()
}
