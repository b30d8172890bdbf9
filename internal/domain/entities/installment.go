package entities

// InstallmentOption is one row of the installment pricing table.
//
// Total and InstallmentValue are minor units rounded half away from zero.
// Invariant: Total reconstructable from InstallmentValue x Installments
// within integer rounding of at most Installments minor units.
type InstallmentOption struct {
	Installments     int     `json:"installments"`
	Total            int64   `json:"total"`
	InstallmentValue int64   `json:"installment_value"`
	InterestRate     float64 `json:"interest_rate"`
	HasInterest      bool    `json:"has_interest"`
	Label            string  `json:"label"`
}

// InstallmentCalculation is the full table for 1..N installments,
// ascending by count. OriginalValue always echoes the caller's input.
type InstallmentCalculation struct {
	OriginalValue int64               `json:"original_value"`
	Options       []InstallmentOption `json:"options"`
}

// Option returns the row for the given installment count.
func (c InstallmentCalculation) Option(count int) (InstallmentOption, bool) {
	for _, o := range c.Options {
		if o.Installments == count {
			return o, true
		}
	}
	return InstallmentOption{}, false
}
