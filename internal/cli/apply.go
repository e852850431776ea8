package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// defaultServerTimeout bounds one server batch.
const defaultServerTimeout = 30 * time.Minute

var (
	applyProperties map[string]string
	applyTimeout    time.Duration
)

var applyCmd = &cobra.Command{
	Use:   "apply <topology>",
	Short: "Create or update the servers of a topology",
	Long: `Creates the servers of a topology file, or updates them when they already exist.

Each server is written as one batch together with its firewall rules, elastic
pools and databases. A failure in one server does not stop the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringToStringVarP(&applyProperties, "prop", "D", nil, "Set external properties (format: key=value)")
	applyCmd.Flags().DurationVar(&applyTimeout, "timeout", defaultServerTimeout, "Time limit for each server batch")
}

func runApply(cmd *cobra.Command, args []string) (err error) {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	topo, err := loadTopology(ctx, args[0], applyProperties)
	if err != nil {
		return err
	}
	m, err := newManager(topo.Subscription, eventPrinter(out))
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	unlock, err := lockTopology(absPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, unlock())
	}()

	var errs []error
	for _, spec := range topo.Servers {
		fmt.Fprintf(out, "Applying server %s/%s...\n", spec.ResourceGroup, spec.Name)
		if err := func() error {
			timeout := applyTimeout
			if timeout <= 0 {
				timeout = defaultServerTimeout
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			b, err := planBatch(ctx, m, spec)
			if err != nil {
				return err
			}
			s, err := b.commit(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Server %s is %s at %s\n", s.Name(), s.State(), s.FullyQualifiedDomainName())
			return nil
		}(); err != nil {
			errs = append(errs, fmt.Errorf("server %s: %w", spec.Name, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	fmt.Fprintf(out, "\nApply complete! Servers: %d.\n", len(topo.Servers))
	return nil
}
