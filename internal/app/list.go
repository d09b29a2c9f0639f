package app

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
)

// List prints every registered environment.
func (a *App) List(ctx context.Context) error {
	a.logger.Debug("Listing environments.", "count", a.registry.Len())

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tENTRY POINT\tMAX STEPS\tREWARD THRESHOLD")
	for _, id := range a.registry.IDs() {
		spec, err := a.registry.Spec(id)
		if err != nil {
			return err
		}
		maxSteps, threshold := "-", "-"
		if spec.MaxEpisodeSteps > 0 {
			maxSteps = strconv.Itoa(spec.MaxEpisodeSteps)
		}
		if spec.RewardThreshold != nil {
			threshold = strconv.FormatFloat(*spec.RewardThreshold, 'g', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", spec.ID, spec.EntryPoint, maxSteps, threshold)
	}
	return tw.Flush()
}
