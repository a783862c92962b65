package stats

// Consistency returns the percentage of elapsed days in the current month
// with at least one recorded activity, rounded and clamped to [0,100].
// Elapsed days (not total days in month) is deliberate: it reflects
// achievable consistency so far. A non-positive elapsed count returns 0
// instead of dividing.
func Consistency(activeDaysThisMonth, elapsedDaysInMonth int) int {
	if elapsedDaysInMonth <= 0 || activeDaysThisMonth <= 0 {
		return 0
	}

	pct := roundHalfUp(float64(activeDaysThisMonth) / float64(elapsedDaysInMonth) * 100)
	if pct > 100 {
		return 100
	}
	return pct
}
