package dashboard

// ViewMode represents the current dashboard view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// ThemeAppliedMsg signals that a theme switch committed
type ThemeAppliedMsg struct {
	Theme string
}

// ThemeErrorMsg signals that a theme switch was rejected
type ThemeErrorMsg struct {
	Theme string
	Error error
}
