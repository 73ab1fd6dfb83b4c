package core

// Money methods. All arithmetic stays in integer cents; float64 only
// appears at the display boundary.

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o. The result may be negative (a net loss).
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Amount returns the value in whole currency units for display or
// export. Never feed the result back into calculations.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}
