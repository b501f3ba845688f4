package checkout

// CanFulfill reports whether requested units can be taken from available.
// available must be the value read inside the transaction that will decrement it.
func CanFulfill(available, requested int) bool {
	return requested <= available
}
