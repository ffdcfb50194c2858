package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"jobcost/roster"

	"github.com/spf13/cobra"
)

var (
	rosterImportInput   string
	rosterImportReplace bool
)

var rosterImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import roster employees from a CSV file",
	Long: `Import employees from a CSV file with the columns:

  name,type,rate,paychex_name,owner,indirect_code,direct_code

Only name, type, and rate are required per row. With --replace the
existing roster is replaced wholesale; otherwise rows are upserted
one by one.`,
	Example: `
  jobcost roster import --input employees.csv
  jobcost roster import --input employees.csv --replace
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		employees, err := readRosterCSV(rosterImportInput)
		if err != nil {
			return err
		}

		store, err := openRosterStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if rosterImportReplace {
			if err := store.ReplaceAll(employees); err != nil {
				return err
			}
		} else {
			for _, employee := range employees {
				if err := store.Upsert(employee); err != nil {
					return fmt.Errorf("import %s: %w", employee.Name, err)
				}
			}
		}

		fmt.Printf("Imported %d employees from %s.\n", len(employees), rosterImportInput)
		return nil
	},
}

func readRosterCSV(path string) ([]roster.Employee, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "type", "rate"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("roster file %s is missing the %q column", path, required)
		}
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	employees := make([]roster.Employee, 0, 32)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row %d: %w", line+1, err)
		}
		line++

		rate, err := strconv.ParseFloat(cell(row, "rate"), 64)
		if err != nil {
			return nil, fmt.Errorf("roster row %d: invalid rate %q", line, cell(row, "rate"))
		}

		owner := false
		switch strings.ToLower(cell(row, "owner")) {
		case "1", "true", "yes":
			owner = true
		}

		employees = append(employees, roster.Employee{
			Name:         cell(row, "name"),
			Type:         cell(row, "type"),
			BaseRate:     rate,
			PaychexName:  cell(row, "paychex_name"),
			IsOwner:      owner,
			IndirectCode: cell(row, "indirect_code"),
			DirectCode:   cell(row, "direct_code"),
		})
	}

	return employees, nil
}

func init() {
	rosterCmd.AddCommand(rosterImportCmd)

	rosterImportCmd.Flags().StringVarP(&rosterImportInput, "input", "i", "", "CSV file with roster employees")
	rosterImportCmd.Flags().BoolVar(&rosterImportReplace, "replace", false, "Replace the whole roster instead of upserting")
	_ = rosterImportCmd.MarkFlagRequired("input")
}
