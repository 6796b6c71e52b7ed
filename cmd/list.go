package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/il2horusteam/dsget/pkg/catalog"
	"github.com/il2horusteam/dsget/pkg/verspec"
	"github.com/il2horusteam/dsget/pkg/version"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list published patch versions",
	RunE:  list,
}

func init() {
	listCmd.Flags().StringArrayP(flagVersion, "v", nil, "version range expression to filter by. Repeatable")
	listCmd.Flags().String(flagRepo, catalog.DefaultOwner+"/"+catalog.DefaultRepo, "github repository that publishes the patches")
	listCmd.Flags().String(flagCatalog, "", "path or url of a catalog file to use instead of the github api")
	listCmd.Flags().String(flagLockfile, "", "path to a lockfile to list instead of the github api")

	_ = listCmd.MarkFlagFilename(flagCatalog, ".yaml", ".yml", ".json")
	_ = listCmd.MarkFlagFilename(flagLockfile, ".json")
}

func list(cmd *cobra.Command, _ []string) error {
	specs, _ := cmd.Flags().GetStringArray(flagVersion)

	set, err := verspec.ParseSet(specs)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	selected := verspec.Select(cat.Versions, func(v version.Version) version.Version { return v }, set)

	kinds := make(map[string][]string)
	for _, rel := range cat.Releases {
		key := rel.Version.String()
		kinds[key] = append(kinds[key], string(rel.Kind))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tARTIFACTS")
	for _, v := range selected {
		fmt.Fprintf(w, "%s\t%s\n", v, strings.Join(kinds[v.String()], ", "))
	}
	return w.Flush()
}
