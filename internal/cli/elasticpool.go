package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var elasticPoolJSON bool

var elasticPoolCmd = &cobra.Command{
	Use:     "elasticpool",
	Aliases: []string{"pool"},
	Short:   "Inspect and delete elastic pools",
}

var elasticPoolListCmd = &cobra.Command{
	Use:   "list <resource-group> <server>",
	Short: "List the elastic pools of a server",
	Args:  cobra.ExactArgs(2),
	RunE:  runElasticPoolList,
}

var elasticPoolShowCmd = &cobra.Command{
	Use:   "show <resource-group> <server> <name>",
	Short: "Show an elastic pool and its databases",
	Args:  cobra.ExactArgs(3),
	RunE:  runElasticPoolShow,
}

var elasticPoolDeleteCmd = &cobra.Command{
	Use:   "delete <resource-group> <server> <name>",
	Short: "Delete an elastic pool",
	Args:  cobra.ExactArgs(3),
	RunE:  runElasticPoolDelete,
}

func init() {
	elasticPoolCmd.PersistentFlags().BoolVar(&elasticPoolJSON, "json", false, "Output in JSON format")
	elasticPoolCmd.AddCommand(elasticPoolListCmd, elasticPoolShowCmd, elasticPoolDeleteCmd)
}

func runElasticPoolList(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	pools, err := m.ElasticPools().ListBySQLServer(cmdContext(cmd), args[0], args[1])
	if err != nil {
		return err
	}

	if elasticPoolJSON {
		views := make([]any, 0, len(pools))
		for _, p := range pools {
			views = append(views, resourceView(p.ID(), p.Name(), p.Inner()))
		}
		return printJSON(cmd.OutOrStdout(), views)
	}
	rows := make([][]string, 0, len(pools))
	for _, p := range pools {
		rows = append(rows, []string{p.Name(), string(p.Edition()), strconv.Itoa(int(p.Dtu())), string(p.State())})
	}
	printTable(cmd.OutOrStdout(), []string{"NAME", "EDITION", "DTU", "STATE"}, rows)
	return nil
}

func runElasticPoolShow(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	p, err := m.ElasticPools().GetBySQLServer(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	dbs, err := p.ListDatabases(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if elasticPoolJSON {
		return printJSON(out, resourceView(p.ID(), p.Name(), p.Inner()))
	}
	fmt.Fprintf(out, "# %s\n", p.ID())
	fmt.Fprintf(out, "  edition          = %s\n", p.Edition())
	fmt.Fprintf(out, "  dtu              = %d\n", p.Dtu())
	fmt.Fprintf(out, "  databaseDtuMin   = %d\n", p.DatabaseDtuMin())
	fmt.Fprintf(out, "  databaseDtuMax   = %d\n", p.DatabaseDtuMax())
	fmt.Fprintf(out, "  storageMB        = %d\n", p.StorageMB())
	fmt.Fprintf(out, "  state            = %s\n", p.State())
	for _, db := range dbs {
		fmt.Fprintf(out, "  database         = %s\n", db.Name())
	}
	return nil
}

func runElasticPoolDelete(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	if err := m.ElasticPools().DeleteBySQLServer(cmdContext(cmd), args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted elastic pool %s\n", args[2])
	return nil
}
