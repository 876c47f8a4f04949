// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/habit"
)

// HabitOptions captures the flags that shape a new habit.
type HabitOptions struct {
	Category string
}

// AddCategoryArg wires the category flag, defaulting to health.
func AddCategoryArg(cmd *cobra.Command, o *HabitOptions) {
	names := make([]string, 0, len(habit.Categories()))
	for _, c := range habit.Categories() {
		names = append(names, string(c))
	}
	cmd.Flags().StringVarP(&o.Category, "category", "c", string(habit.Health),
		fmt.Sprintf("Category for the habit. One of: %s.", strings.Join(names, ", ")))

	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// Resolve validates the flag value against the known categories.
func (o *HabitOptions) Resolve() (habit.Category, error) {
	c := habit.Category(strings.ToLower(strings.TrimSpace(o.Category)))
	if !c.Known() {
		return "", fmt.Errorf("unknown category %q", o.Category)
	}
	return c, nil
}

// ListOptions captures the flags for the list view.
type ListOptions struct {
	ShowBadges bool
}

// AddShowBadgesArg wires the badges flag on the list command.
func AddShowBadgesArg(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVar(&o.ShowBadges, "badges", false,
		"Also print earned achievements.")
}
