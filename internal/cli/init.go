package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a starter topology file",
	Long: `Writes a starter topology (topology.yaml by default) describing one server
with a firewall rule, an elastic pool and two databases. An existing file is
never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const starterTopology = `# azmgmt topology
# Dollar-brace placeholders are filled from -D name=value.

subscription: ""

servers:
  - name: example-sql
    resourceGroup: example-rg
    region: westus
    administratorLogin: sqladmin
    administratorPassword: ${adminPassword}
    allowAzureServices: true
    tags:
      env: dev

    firewallRules:
      - name: office
        startIp: 203.0.113.0
        endIp: 203.0.113.255

    elasticPools:
      - name: shared
        edition: Standard
        dtu: 100

    databases:
      - name: app
        elasticPool: shared
      - name: reporting
        edition: Standard
        serviceObjective: S1
`

func runInit(cmd *cobra.Command, args []string) error {
	path := "topology.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "%s already exists, leaving it untouched\n", path)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(starterTopology), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	fmt.Fprintf(out, "Created %s\n", path)

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Edit %s to describe your servers\n", path)
	fmt.Fprintf(out, "  2. Run 'azmgmt graph %s -D adminPassword=x' to see the task graph\n", path)
	fmt.Fprintf(out, "  3. Run 'azmgmt apply %s -D adminPassword=...' to create them\n", path)
	return nil
}
