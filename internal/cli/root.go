package cli

import (
	"strings"

	"github.com/picklr-io/azmgmt/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagSubscription string
	flagTenant       string
	flagCloud        string
	flagEndpoint     string
	flagLogLevel     string
	flagLogFormat    string
	flagParallelism  int
	flagMaxRetries   int
	noColor          bool
)

var rootCmd = &cobra.Command{
	Use:   "azmgmt",
	Short: "Manage Azure SQL servers, firewall rules, elastic pools and databases",
	Long: `azmgmt manages Azure SQL servers and their children through Azure Resource Manager.

Topology files (.pkl or .yaml) describe servers together with their firewall
rules, elastic pools and databases. Each server is written as one batch:
children are written only after their server, databases after the pool they
join, and a failed write skips everything that depends on it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSubscription, "subscription", "", "Subscription ID (default $AZURE_SUBSCRIPTION_ID)")
	pf.StringVar(&flagTenant, "tenant", "", "Tenant ID used for authentication and Active Directory administrators (default $AZURE_TENANT_ID)")
	pf.StringVar(&flagCloud, "cloud", "AzurePublic", "Cloud environment: "+strings.Join(clouds.Names(), ", "))
	pf.StringVar(&flagEndpoint, "endpoint", "", "Override the Resource Manager endpoint (default $AZMGMT_ENDPOINT)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	pf.IntVar(&flagParallelism, "parallelism", 0, "Maximum concurrent writes per server batch (0 uses the default)")
	pf.IntVar(&flagMaxRetries, "max-retries", 0, "Retries for throttled or failed Resource Manager calls (0 uses the SDK default, -1 disables)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(firewallCmd)
	rootCmd.AddCommand(elasticPoolCmd)
	rootCmd.AddCommand(databaseCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logging.Configure(logging.Options{
		Level:  flagLogLevel,
		Format: flagLogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if strings.EqualFold(flagLogLevel, "debug") {
		logging.BridgeAzureSDK()
	}
	return nil
}
