package core

type (
	// TripUpdate carries a partial edit. Nil fields keep the stored
	// value; validation runs on the merged record, not the patch.
	TripUpdate struct {
		Date          *Date
		StartTime     *string
		EndTime       *string
		Fare          *Money
		Tip           *Money
		DistanceKm    *float64
		PaymentMethod *PaymentMethod
		Notes         *string
	}

	ExpenseUpdate struct {
		Date        *Date
		Amount      *Money
		Category    *ExpenseCategory
		Description *string
		ReceiptRef  *string
		FuelVolumeL *float64
	}

	SettingsUpdate struct {
		Currency     *Currency
		DistanceUnit *DistanceUnit
		VolumeUnit   *VolumeUnit
	}
)

// Apply merges the patch into t and returns the result.
func (u TripUpdate) Apply(t Trip) Trip {
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.StartTime != nil {
		t.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		t.EndTime = *u.EndTime
	}
	if u.Fare != nil {
		t.Fare = *u.Fare
	}
	if u.Tip != nil {
		t.Tip = *u.Tip
	}
	if u.DistanceKm != nil {
		t.DistanceKm = *u.DistanceKm
	}
	if u.PaymentMethod != nil {
		t.PaymentMethod = *u.PaymentMethod
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	return t
}

// Apply merges the patch into e and returns the result.
func (u ExpenseUpdate) Apply(e Expense) Expense {
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.ReceiptRef != nil {
		e.ReceiptRef = *u.ReceiptRef
	}
	if u.FuelVolumeL != nil {
		e.FuelVolumeL = *u.FuelVolumeL
	}
	return e
}

// Apply merges the patch into s and returns the result.
func (u SettingsUpdate) Apply(s Settings) Settings {
	if u.Currency != nil {
		s.Currency = *u.Currency
	}
	if u.DistanceUnit != nil {
		s.DistanceUnit = *u.DistanceUnit
	}
	if u.VolumeUnit != nil {
		s.VolumeUnit = *u.VolumeUnit
	}
	return s
}
