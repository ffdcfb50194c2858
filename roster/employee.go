package roster

import "strings"

const (
	TypeHourly   = "hourly"
	TypeSalaried = "salaried"
)

// Employee is one directory record, keyed by the name used in the
// timesheet exports.
type Employee struct {
	Name         string
	Type         string // hourly or salaried
	BaseRate     float64
	PaychexName  string // payroll-system name when it differs
	IsOwner      bool   // owners draw distributions, not wages
	IndirectCode string
	DirectCode   string
}

func (e Employee) IsSalaried() bool {
	return strings.EqualFold(e.Type, TypeSalaried)
}

func (e Employee) IsHourly() bool {
	return strings.EqualFold(e.Type, TypeHourly)
}

// ShouldJobCost reports whether the employee participates in job costing.
// Owner compensation comes from profit, so owners carry no labor cost.
func (e Employee) ShouldJobCost() bool {
	return !e.IsOwner
}

// PaychexAlias returns the explicit payroll alias, or "" when the payroll
// system uses the same name.
func (e Employee) PaychexAlias() string {
	alias := strings.TrimSpace(e.PaychexName)
	if alias == "" || alias == e.Name {
		return ""
	}
	return alias
}

// Directory is the read-only snapshot the engine runs against, loaded once
// per invocation.
type Directory map[string]Employee

func (d Directory) NameSet() map[string]struct{} {
	names := make(map[string]struct{}, len(d))
	for name := range d {
		names[name] = struct{}{}
	}
	return names
}

// Aliases maps timesheet names to payroll names for employees whose
// payroll record uses a different spelling.
func (d Directory) Aliases() map[string]string {
	aliases := make(map[string]string)
	for name, emp := range d {
		if alias := emp.PaychexAlias(); alias != "" {
			aliases[name] = alias
		}
	}
	return aliases
}
