package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confectlab/confect/resource"
)

var hashCmd = &cobra.Command{
	Use:   "hash URL",
	Short: "Print the sha256 digest of a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	ctx, cancel := cmdContext()
	defer cancel()

	digest, err := resource.Sha256(ctx, args[0])
	if err != nil {
		return fmt.Errorf("hash %s: %w", args[0], err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), digest)
	return err
}
