package payslip

// Summary is one semi-monthly pay period. Pay is computed from the
// employee's daily rate and cost-of-living allowance at a fixed ten
// working days per half.
type Summary struct {
	Period      string `json:"period"`
	Label       string `json:"label"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
	DailyRate   int    `json:"daily_rate"`
	Cola        int    `json:"cola"`
	BasicPay    int    `json:"basic_pay"`
	ColaPay     int    `json:"cola_pay"`
	GrossPay    int    `json:"gross_pay"`
	NetPay      int    `json:"net_pay"`
}

type ListResponse struct {
	EmpID        int       `json:"emp_id"`
	EmployeeName string    `json:"employee_name"`
	Payslips     []Summary `json:"payslips"`
}
