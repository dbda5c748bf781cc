package domain

// Vacation blocks a worker for an inclusive range of calendar days.
// Weekend days inside the range are ignored when the range is expanded.
type Vacation struct {
	ID     string
	Worker string
	Start  string
	End    string
}
