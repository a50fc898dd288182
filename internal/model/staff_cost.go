package model

// StaffCostRecord is the salary bill for one month, derived from the staff
// roster and attendance by an external service.
type StaffCostRecord struct {
	Month       string // "2006-01"
	StaffCount  int
	TotalSalary float64
}

// MonthLayout is the layout used for month keys across the application.
const MonthLayout = "2006-01"
