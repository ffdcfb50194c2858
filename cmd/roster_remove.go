package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rosterRemoveName string

var rosterRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a roster employee",
	Example: `
  jobcost roster remove --name "Jane Doe"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRosterStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(rosterRemoveName); err != nil {
			return err
		}

		fmt.Printf("Removed %s.\n", rosterRemoveName)
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterRemoveCmd)

	rosterRemoveCmd.Flags().StringVar(&rosterRemoveName, "name", "", "Employee name to remove")
	_ = rosterRemoveCmd.MarkFlagRequired("name")
}
