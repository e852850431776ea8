package cli

import (
	"fmt"

	"github.com/picklr-io/azmgmt/pkg/sql"
	"github.com/spf13/cobra"
)

var (
	databaseElasticPool string
	databaseJSON        bool
)

var databaseCmd = &cobra.Command{
	Use:     "database",
	Aliases: []string{"db"},
	Short:   "Inspect and delete databases",
}

var databaseListCmd = &cobra.Command{
	Use:   "list <resource-group> <server>",
	Short: "List the databases of a server",
	Args:  cobra.ExactArgs(2),
	RunE:  runDatabaseList,
}

var databaseShowCmd = &cobra.Command{
	Use:   "show <resource-group> <server> <name>",
	Short: "Show a database",
	Args:  cobra.ExactArgs(3),
	RunE:  runDatabaseShow,
}

var databaseDeleteCmd = &cobra.Command{
	Use:   "delete <resource-group> <server> <name>",
	Short: "Delete a database",
	Args:  cobra.ExactArgs(3),
	RunE:  runDatabaseDelete,
}

func init() {
	databaseListCmd.Flags().StringVar(&databaseElasticPool, "elastic-pool", "", "Only list databases in this elastic pool")
	databaseCmd.PersistentFlags().BoolVar(&databaseJSON, "json", false, "Output in JSON format")
	databaseCmd.AddCommand(databaseListCmd, databaseShowCmd, databaseDeleteCmd)
}

func runDatabaseList(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	m, err := newManager("", nil)
	if err != nil {
		return err
	}

	var dbs []*sql.Database
	if databaseElasticPool != "" {
		var pool *sql.ElasticPool
		pool, err = m.ElasticPools().GetBySQLServer(ctx, args[0], args[1], databaseElasticPool)
		if err != nil {
			return err
		}
		dbs, err = pool.ListDatabases(ctx)
	} else {
		dbs, err = m.Databases().ListBySQLServer(ctx, args[0], args[1])
	}
	if err != nil {
		return err
	}

	if databaseJSON {
		views := make([]any, 0, len(dbs))
		for _, db := range dbs {
			views = append(views, resourceView(db.ID(), db.Name(), db.Inner()))
		}
		return printJSON(cmd.OutOrStdout(), views)
	}
	rows := make([][]string, 0, len(dbs))
	for _, db := range dbs {
		rows = append(rows, []string{db.Name(), string(db.Edition()), string(db.ServiceLevelObjective()), db.ElasticPoolName(), db.Status()})
	}
	printTable(cmd.OutOrStdout(), []string{"NAME", "EDITION", "OBJECTIVE", "ELASTIC POOL", "STATUS"}, rows)
	return nil
}

func runDatabaseShow(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	db, err := m.Databases().GetBySQLServer(cmdContext(cmd), args[0], args[1], args[2])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if databaseJSON {
		return printJSON(out, resourceView(db.ID(), db.Name(), db.Inner()))
	}
	fmt.Fprintf(out, "# %s\n", db.ID())
	fmt.Fprintf(out, "  edition      = %s\n", db.Edition())
	fmt.Fprintf(out, "  objective    = %s\n", db.ServiceLevelObjective())
	fmt.Fprintf(out, "  elasticPool  = %s\n", db.ElasticPoolName())
	fmt.Fprintf(out, "  collation    = %s\n", db.Collation())
	fmt.Fprintf(out, "  maxSizeBytes = %d\n", db.MaxSizeBytes())
	fmt.Fprintf(out, "  status       = %s\n", db.Status())
	fmt.Fprintf(out, "  created      = %s\n", db.CreationDate().Format("2006-01-02T15:04:05Z07:00"))
	return nil
}

func runDatabaseDelete(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	if err := m.Databases().DeleteBySQLServer(cmdContext(cmd), args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted database %s\n", args[2])
	return nil
}
