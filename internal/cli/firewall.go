package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	firewallStart string
	firewallEnd   string
	firewallJSON  bool
)

var firewallCmd = &cobra.Command{
	Use:   "firewall",
	Short: "Manage server firewall rules",
}

var firewallListCmd = &cobra.Command{
	Use:   "list <resource-group> <server>",
	Short: "List the firewall rules of a server",
	Args:  cobra.ExactArgs(2),
	RunE:  runFirewallList,
}

var firewallCreateCmd = &cobra.Command{
	Use:   "create <resource-group> <server> <name>",
	Short: "Create or replace a firewall rule",
	Args:  cobra.ExactArgs(3),
	RunE:  runFirewallCreate,
}

var firewallDeleteCmd = &cobra.Command{
	Use:   "delete <resource-group> <server> <name>",
	Short: "Delete a firewall rule",
	Args:  cobra.ExactArgs(3),
	RunE:  runFirewallDelete,
}

func init() {
	firewallCreateCmd.Flags().StringVar(&firewallStart, "start", "", "First admitted IP address")
	firewallCreateCmd.Flags().StringVar(&firewallEnd, "end", "", "Last admitted IP address (default --start)")
	_ = firewallCreateCmd.MarkFlagRequired("start")
	firewallCmd.PersistentFlags().BoolVar(&firewallJSON, "json", false, "Output in JSON format")
	firewallCmd.AddCommand(firewallListCmd, firewallCreateCmd, firewallDeleteCmd)
}

func runFirewallList(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	rules, err := m.FirewallRules().ListBySQLServer(cmdContext(cmd), args[0], args[1])
	if err != nil {
		return err
	}

	if firewallJSON {
		views := make([]any, 0, len(rules))
		for _, r := range rules {
			views = append(views, resourceView(r.ID(), r.Name(), r.Inner()))
		}
		return printJSON(cmd.OutOrStdout(), views)
	}
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{r.Name(), r.StartIPAddress(), r.EndIPAddress()})
	}
	printTable(cmd.OutOrStdout(), []string{"NAME", "START", "END"}, rows)
	return nil
}

func runFirewallCreate(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	end := firewallEnd
	if end == "" {
		end = firewallStart
	}
	rule, err := m.FirewallRules().Define(args[2]).
		WithExistingSQLServer(args[0], args[1]).
		WithIPAddressRange(firewallStart, end).
		Create(cmdContext(cmd))
	if err != nil {
		return err
	}

	if firewallJSON {
		return printJSON(cmd.OutOrStdout(), resourceView(rule.ID(), rule.Name(), rule.Inner()))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created firewall rule %s (%s - %s)\n", rule.Name(), rule.StartIPAddress(), rule.EndIPAddress())
	return nil
}

func runFirewallDelete(cmd *cobra.Command, args []string) error {
	m, err := newManager("", nil)
	if err != nil {
		return err
	}
	if err := m.FirewallRules().DeleteBySQLServer(cmdContext(cmd), args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted firewall rule %s\n", args[2])
	return nil
}
