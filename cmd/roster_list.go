package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster employees",
	Example: `
  jobcost roster list
  jobcost roster list --db ./jobcost.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRosterStore()
		if err != nil {
			return err
		}
		defer store.Close()

		employees, err := store.List()
		if err != nil {
			return err
		}

		if len(employees) == 0 {
			fmt.Println("Roster is empty. Add employees with: jobcost roster add")
			return nil
		}

		fmt.Printf("%-30s %-10s %10s  %-25s %s\n", "Name", "Type", "Rate", "Paychex Name", "Owner")
		for _, employee := range employees {
			owner := ""
			if employee.IsOwner {
				owner = "yes"
			}
			fmt.Printf("%-30s %-10s %10.2f  %-25s %s\n",
				employee.Name, employee.Type, employee.BaseRate, employee.PaychexName, owner)
		}
		fmt.Printf("%d employees.\n", len(employees))
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterListCmd)
}
