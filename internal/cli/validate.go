package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateProperties map[string]string

var validateCmd = &cobra.Command{
	Use:   "validate <topology>",
	Short: "Validate a topology file",
	Long:  `Evaluates a topology file and checks it without contacting Azure.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringToStringVarP(&validateProperties, "prop", "D", nil, "Set external properties (format: key=value)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checking %s... ", args[0])
	topo, err := loadTopology(cmdContext(cmd), args[0], validateProperties)
	if err != nil {
		fmt.Fprintln(out, "FAILED")
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Fprintln(out, "OK")

	var rules, pools, dbs int
	for _, s := range topo.Servers {
		rules += len(s.FirewallRules)
		pools += len(s.ElasticPools)
		dbs += len(s.Databases)
	}
	fmt.Fprintf(out, "\nTopology is valid! Servers: %d, firewall rules: %d, elastic pools: %d, databases: %d.\n",
		len(topo.Servers), rules, pools, dbs)
	return nil
}
