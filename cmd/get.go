package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confectlab/confect/resource"
)

var getMimetype string

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Fetch and parse a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getMimetype, "mimetype", "", "parse as this mimetype instead of guessing")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	var opts []resource.LoadOption
	if getMimetype != "" {
		opts = append(opts, resource.WithMimetype(getMimetype))
	}
	v, err := resource.Load(ctx, args[0], opts...)
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	if raw, ok := v.([]byte); ok {
		_, err := cmd.OutOrStdout().Write(raw)
		return err
	}
	return printValue(cmd, v)
}
