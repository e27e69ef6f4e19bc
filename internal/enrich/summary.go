package enrich

// Outcome is the final state of one processed row.
type Outcome string

const (
	// OutcomeSkipped marks a row that already had a director.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNotFound marks a row with no director credit found.
	OutcomeNotFound Outcome = "not found"
	// OutcomeResolved marks a row whose director was found but not written
	// (dry run).
	OutcomeResolved Outcome = "resolved"
	// OutcomeUpdated marks a row whose director was written.
	OutcomeUpdated Outcome = "updated"
	// OutcomeFailed marks a row whose update was rejected by the database.
	OutcomeFailed Outcome = "update failed"
)

// Result records what happened to one row.
type Result struct {
	Key      int64
	Title    string
	Year     string
	Previous string
	Director string
	Outcome  Outcome
	Err      error
}

// Summary aggregates a run. Resolved counts every row with a director found,
// whether or not it was written.
type Summary struct {
	DryRun   bool
	Fetched  int
	Skipped  int
	Resolved int
	NotFound int
	Updated  int
	Failed   int
	Results  []Result
}

// Processed reports how many rows were visited before the run ended.
func (s Summary) Processed() int {
	return len(s.Results)
}

func (s *Summary) add(result Result) {
	s.Results = append(s.Results, result)
	switch result.Outcome {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeResolved:
		s.Resolved++
	case OutcomeUpdated:
		s.Resolved++
		s.Updated++
	case OutcomeFailed:
		s.Resolved++
		s.Failed++
	}
}
