package slot

// AllocatorStats is a point-in-time snapshot of an Allocator's bookkeeping.
// Used by tests and by the slotctl bench command.
type AllocatorStats struct {
	TableLen int `json:"table_len"` // current table length
	InUse    int `json:"in_use"`    // IDs currently allocated

	AllocCalls int `json:"alloc_calls"` // total Alloc calls, including failed ones
	FreeCalls  int `json:"free_calls"`  // total Free calls
	Reused     int `json:"reused"`      // Allocs satisfied by a previously freed ID
	Grown      int `json:"grown"`       // Allocs that grew the table by one
}
