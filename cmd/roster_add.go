package cmd

import (
	"fmt"

	"jobcost/roster"

	"github.com/spf13/cobra"
)

var (
	rosterAddName         string
	rosterAddType         string
	rosterAddRate         float64
	rosterAddPaychexName  string
	rosterAddOwner        bool
	rosterAddIndirectCode string
	rosterAddDirectCode   string
)

var rosterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a roster employee",
	Long: `Add an employee to the roster, or update the existing entry with the
same name. The name must match the timesheet export exactly; use
--paychex-name when the payroll register spells it differently.`,
	Example: `
  jobcost roster add --name "John A Smith" --type hourly --rate 25.00
  jobcost roster add --name "Jane Doe" --type salaried --rate 67.36 --paychex-name "Doe, Jane"
  jobcost roster add --name "Owen Owner" --type salaried --rate 0 --owner
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRosterStore()
		if err != nil {
			return err
		}
		defer store.Close()

		employee := roster.Employee{
			Name:         rosterAddName,
			Type:         rosterAddType,
			BaseRate:     rosterAddRate,
			PaychexName:  rosterAddPaychexName,
			IsOwner:      rosterAddOwner,
			IndirectCode: rosterAddIndirectCode,
			DirectCode:   rosterAddDirectCode,
		}
		if err := store.Upsert(employee); err != nil {
			return err
		}

		fmt.Printf("Saved %s (%s, $%.2f).\n", employee.Name, employee.Type, employee.BaseRate)
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterAddCmd)

	rosterAddCmd.Flags().StringVar(&rosterAddName, "name", "", "Employee name exactly as it appears on the timesheet")
	rosterAddCmd.Flags().StringVar(&rosterAddType, "type", "hourly", "Pay type: hourly|salaried")
	rosterAddCmd.Flags().Float64Var(&rosterAddRate, "rate", 0, "Base hourly rate")
	rosterAddCmd.Flags().StringVar(&rosterAddPaychexName, "paychex-name", "", "Name as it appears on the Paychex register (optional)")
	rosterAddCmd.Flags().BoolVar(&rosterAddOwner, "owner", false, "Mark as owner (excluded from overtime and job costing)")
	rosterAddCmd.Flags().StringVar(&rosterAddIndirectCode, "indirect-code", "", "Indirect cost code (optional)")
	rosterAddCmd.Flags().StringVar(&rosterAddDirectCode, "direct-code", "", "Direct cost code (optional)")

	_ = rosterAddCmd.MarkFlagRequired("name")
	_ = rosterAddCmd.MarkFlagRequired("rate")
}
