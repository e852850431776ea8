package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
	"github.com/spf13/cobra"
)

var (
	graphFormat     string
	graphProperties map[string]string
)

var graphCmd = &cobra.Command{
	Use:   "graph <topology>",
	Short: "Output the task graph of a topology",
	Long: `Prints the tasks a topology would run and their dependencies without
contacting Azure. Every server is shown as if it were being created.

  azmgmt graph topology.yaml | dot -Tpng > graph.png
  azmgmt graph topology.yaml --format mermaid`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "dot", "Output format: dot or mermaid")
	graphCmd.Flags().StringToStringVarP(&graphProperties, "prop", "D", nil, "Set external properties (format: key=value)")
}

// offlineCredential fails every token request.
type offlineCredential struct{}

func (offlineCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{}, errors.New("graph does not contact Azure")
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	topo, err := loadTopology(ctx, args[0], graphProperties)
	if err != nil {
		return err
	}
	sub := topo.Subscription
	if sub == "" {
		sub = "00000000-0000-0000-0000-000000000000"
	}
	m, err := newManagerWithCredential(sub, "", offlineCredential{}, nil)
	if err != nil {
		return err
	}

	merged := &taskgroup.Graph{}
	for _, spec := range topo.Servers {
		g, err := defineBatch(m, spec).Graph()
		if err != nil {
			return fmt.Errorf("server %s: %w", spec.Name, err)
		}
		merged.Nodes = append(merged.Nodes, g.Nodes...)
		merged.Edges = append(merged.Edges, g.Edges...)
		merged.TopoOrder = append(merged.TopoOrder, g.TopoOrder...)
	}

	switch graphFormat {
	case "dot":
		fmt.Fprint(cmd.OutOrStdout(), merged.DOT())
	case "mermaid":
		fmt.Fprint(cmd.OutOrStdout(), merged.Mermaid())
	default:
		return fmt.Errorf("unknown graph format %q: expected dot or mermaid", graphFormat)
	}
	return nil
}
