package domain

// ManualEntry is a hand-placed block of hours, typically parked on the
// unplanned row until a real assignee is chosen. Entries are display-only
// and never move during a scheduling pass.
type ManualEntry struct {
	ID     string
	Worker string
	Day    string
	Hours  float64
	Note   string
}
