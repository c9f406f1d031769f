package source

// DiscoveredFile is one export file found by ScanPath.
type DiscoveredFile struct {
	Path string
	Size int64
}

// ParseResult holds the entries accepted from one export file.
type ParseResult struct {
	File DiscoveredFile
	// Entries maps store keys to the value to write, already normalized.
	Entries map[string]string
	// Skipped lists keys that were not recognized.
	Skipped []string
	// ParseErrors counts recognized keys whose value was malformed.
	ParseErrors int
	FoodDays    int
	StepDays    int
	Weights     int
	HasProfile  bool
	Err         error
}
