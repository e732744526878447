package domain

// ReturnSeries is a named sequence of periodic returns (daily, monthly, ...)
// expressed as decimals, e.g. 0.01 for 1%.
type ReturnSeries struct {
	Name    string    `json:"name"`
	Returns []float64 `json:"returns"`
}

func (s ReturnSeries) Len() int {
	return len(s.Returns)
}

// ExcessOver subtracts a constant periodic rate from every observation.
func (s ReturnSeries) ExcessOver(periodicRate float64) []float64 {
	excess := make([]float64, len(s.Returns))
	for i, r := range s.Returns {
		excess[i] = r - periodicRate
	}
	return excess
}
