package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confectlab/confect/flatten"
	"github.com/confectlab/confect/resource"
)

var flattenSep string

var flattenCmd = &cobra.Command{
	Use:   "flatten URL",
	Short: "Print a nested document as one level of dotted keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlatten,
}

var unflattenCmd = &cobra.Command{
	Use:   "unflatten URL",
	Short: "Rebuild a nested document from dotted keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnflatten,
}

func init() {
	flattenCmd.Flags().StringVar(&flattenSep, "sep", ".", "key separator")
	unflattenCmd.Flags().StringVar(&flattenSep, "sep", ".", "key separator")
	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(unflattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	v, err := resource.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	return printValue(cmd, flatten.Flatten(v, flattenSep))
}

func runUnflatten(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	v, err := resource.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%s: unflatten needs a mapping, got %T", args[0], v)
	}
	return printValue(cmd, flatten.Unflatten(m, flattenSep))
}
