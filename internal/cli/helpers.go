package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/olekukonko/tablewriter"
	"github.com/picklr-io/azmgmt/internal/eval"
	"github.com/picklr-io/azmgmt/internal/ir"
	"github.com/picklr-io/azmgmt/internal/logging"
	"github.com/picklr-io/azmgmt/internal/provider"
	"github.com/picklr-io/azmgmt/pkg/arm"
	"github.com/picklr-io/azmgmt/pkg/sql"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
	"github.com/spf13/cobra"
)

var clouds = provider.NewRegistry()

// Replaced in tests.
var (
	newCredential = arm.NewDefaultCredential
	transport     policy.Transporter
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// colorize returns code unless colors are disabled.
func colorize(code string) string {
	if noColor {
		return ""
	}
	return code
}

func envOr(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}

// clientOptions builds the ARM pipeline options from --cloud and --endpoint.
func clientOptions() (*arm.ClientOptions, error) {
	cfg, err := clouds.Get(flagCloud)
	if err != nil {
		return nil, err
	}
	if endpoint := envOr(flagEndpoint, "AZMGMT_ENDPOINT"); endpoint != "" {
		cfg = arm.CloudWithEndpoint(cfg, endpoint)
	}
	opts := &arm.ClientOptions{}
	opts.Cloud = cfg
	opts.Retry.MaxRetries = int32(flagMaxRetries)
	if transport != nil {
		opts.Transport = transport
	}
	return opts, nil
}

// newManager returns a SQL manager for the resolved subscription. fallback is
// used when neither --subscription nor $AZURE_SUBSCRIPTION_ID is set.
func newManager(fallback string, callback taskgroup.Callback) (*sql.Manager, error) {
	sub := envOr(flagSubscription, "AZURE_SUBSCRIPTION_ID")
	if sub == "" {
		sub = fallback
	}
	if sub == "" {
		return nil, errors.New("no subscription: set --subscription or AZURE_SUBSCRIPTION_ID")
	}
	tenant := envOr(flagTenant, "AZURE_TENANT_ID")
	cred, err := newCredential(tenant)
	if err != nil {
		return nil, err
	}
	return newManagerWithCredential(sub, tenant, cred, callback)
}

func newManagerWithCredential(sub, tenant string, cred azcore.TokenCredential, callback taskgroup.Callback) (*sql.Manager, error) {
	opts, err := clientOptions()
	if err != nil {
		return nil, err
	}
	return sql.NewManager(sub, cred, &sql.ManagerOptions{
		ClientOptions: opts,
		TenantID:      tenant,
		Logger:        logging.Logger(),
		Parallelism:   flagParallelism,
		Callback:      callback,
	})
}

// loadTopology resolves path against the working directory and evaluates it.
func loadTopology(ctx context.Context, path string, properties map[string]string) (*ir.Topology, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	evaluator := eval.NewEvaluator(filepath.Dir(absPath))
	topo, err := evaluator.LoadTopology(ctx, filepath.Base(absPath), properties)
	if err != nil {
		return nil, fmt.Errorf("failed to load topology: %w", err)
	}
	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	return topo, nil
}

// eventPrinter writes one line per task event.
func eventPrinter(w io.Writer) taskgroup.Callback {
	return func(e taskgroup.Event) {
		color := colorReset
		switch e.Status {
		case taskgroup.StatusCompleted:
			color = colorGreen
		case taskgroup.StatusFailed:
			color = colorRed
		case taskgroup.StatusSkipped:
			color = colorYellow
		case taskgroup.StatusStarted:
			return
		}
		line := fmt.Sprintf("%s%-9s%s %s", colorize(color), e.Status, colorize(colorReset), e.Key)
		if e.Duration > 0 {
			line += fmt.Sprintf(" (%s)", e.Duration.Round(time.Millisecond))
		}
		if e.Error != nil {
			line += ": " + e.Error.Error()
		}
		fmt.Fprintln(w, line)
	}
}

// resourceView pairs a resource body with the read-only id and name its
// request encoding leaves out.
func resourceView(id, name string, body any) map[string]any {
	return map[string]any{"id": id, "name": name, "resource": body}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
	fmt.Fprintf(w, "(%d row%s)\n", len(rows), plural(len(rows)))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
