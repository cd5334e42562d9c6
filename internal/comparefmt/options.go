package comparefmt

// PrettyOpts configures human-readable rendering of comparison results.
type PrettyOpts struct {
	Color bool
	// Width truncates rendered diff lines, 0 - unlimited.
	Width int
	// ShowPassing also lists fixtures that matched.
	ShowPassing bool
}

// JSONOpts configures JSON output of comparison results.
type JSONOpts struct {
	IncludeDiffs bool
	// Max caps the number of diffs emitted per fixture, 0 - unlimited.
	Max int
}
