package scan

// Expand materializes one batch into a flat ordered slice of scannables by
// invoking each commit's patch parser in batch order. A parse failure is
// attributed to the whole commit and does not abort the remaining commits.
func Expand(batch []*Commit) ([]Scannable, []ScanError) {
	var items []Scannable
	var errs []ScanError
	for _, c := range batch {
		files, err := c.Scannables()
		if err != nil {
			errs = append(errs, ScanError{OwnerSHA: c.SHA, Err: err})
			continue
		}
		items = append(items, files...)
	}
	return items, errs
}
