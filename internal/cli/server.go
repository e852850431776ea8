package cli

import (
	"fmt"

	"github.com/picklr-io/azmgmt/pkg/sql"
	"github.com/spf13/cobra"
)

var (
	serverResourceGroup string
	serverJSON          bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Inspect and delete SQL servers",
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers in the subscription or one resource group",
	Args:  cobra.NoArgs,
	RunE:  runServerList,
}

var serverShowCmd = &cobra.Command{
	Use:   "show <resource-group> <name>",
	Short: "Show one server",
	Args:  cobra.ExactArgs(2),
	RunE:  runServerShow,
}

var serverDeleteCmd = &cobra.Command{
	Use:   "delete <resource-group> <name>",
	Short: "Delete a server and everything on it",
	Args:  cobra.ExactArgs(2),
	RunE:  runServerDelete,
}

func init() {
	serverListCmd.Flags().StringVarP(&serverResourceGroup, "resource-group", "g", "", "Only list servers of this resource group")
	serverCmd.PersistentFlags().BoolVar(&serverJSON, "json", false, "Output in JSON format")
	serverCmd.AddCommand(serverListCmd, serverShowCmd, serverDeleteCmd)
}

func runServerList(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	m, err := newManager("", nil)
	if err != nil {
		return err
	}

	var servers []*sql.Server
	if serverResourceGroup != "" {
		servers, err = m.Servers().ListByResourceGroup(ctx, serverResourceGroup)
	} else {
		servers, err = m.Servers().List(ctx)
	}
	if err != nil {
		return err
	}

	if serverJSON {
		views := make([]any, 0, len(servers))
		for _, s := range servers {
			views = append(views, resourceView(s.ID(), s.Name(), s.Inner()))
		}
		return printJSON(cmd.OutOrStdout(), views)
	}
	rows := make([][]string, 0, len(servers))
	for _, s := range servers {
		rows = append(rows, []string{s.Name(), s.ResourceGroupName(), s.RegionName(), string(s.Version()), s.State()})
	}
	printTable(cmd.OutOrStdout(), []string{"NAME", "RESOURCE GROUP", "REGION", "VERSION", "STATE"}, rows)
	return nil
}

func runServerShow(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	s, err := m.Servers().GetByResourceGroup(cmdContext(cmd), args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if serverJSON {
		return printJSON(out, resourceView(s.ID(), s.Name(), s.Inner()))
	}
	fmt.Fprintf(out, "# %s\n", s.ID())
	fmt.Fprintf(out, "  region   = %s\n", s.RegionName())
	fmt.Fprintf(out, "  version  = %s\n", s.Version())
	fmt.Fprintf(out, "  state    = %s\n", s.State())
	fmt.Fprintf(out, "  fqdn     = %s\n", s.FullyQualifiedDomainName())
	fmt.Fprintf(out, "  admin    = %s\n", s.AdministratorLogin())
	for k, v := range s.Tags() {
		fmt.Fprintf(out, "  tags.%s = %s\n", k, v)
	}
	return nil
}

func runServerDelete(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	if err := m.Servers().DeleteByResourceGroup(cmdContext(cmd), args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted server %s/%s\n", args[0], args[1])
	return nil
}
