package stats

// Fences returns the Tukey fences Q1 - k*IQR and Q3 + k*IQR. Box plots use k = 1.5.
func Fences(x []float64, k float64) (lower, upper float64) {
	q1, q3 := Percentile(x, 25), Percentile(x, 75)
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr
}

// Outliers returns the values of x outside the Tukey fences, in input order.
func Outliers(x []float64, k float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	lo, hi := Fences(x, k)
	var out []float64
	for _, v := range x {
		if v < lo || v > hi {
			out = append(out, v)
		}
	}
	return out
}
