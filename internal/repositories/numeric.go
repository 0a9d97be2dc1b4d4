package repositories

import "github.com/jackc/pgtype"

// NUMERIC columns are surfaced as *float64; NULL maps to nil.

func numericParam(f *float64) pgtype.Numeric {
	var n pgtype.Numeric
	if f == nil {
		n.Status = pgtype.Null
		return n
	}
	_ = n.Set(*f)
	return n
}

func numericValue(n pgtype.Numeric) (*float64, error) {
	if n.Status != pgtype.Present {
		return nil, nil
	}
	var f float64
	if err := n.AssignTo(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
