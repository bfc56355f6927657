package domain

// FilterStep records how many offers survived a filter.
type FilterStep struct {
	Filter    string `json:"filter"`
	Remaining int    `json:"remaining"`
}

// QualificationResult is the outcome of one run: the applicant's ratios, the
// offer count after each filter, and the qualifying offers in rate sheet order.
type QualificationResult struct {
	Ratios    Ratios       `json:"ratios"`
	Steps     []FilterStep `json:"steps"`
	Offers    []Offer      `json:"offers"`
	Evaluated int          `json:"evaluated"`
}

// Count returns the number of qualifying offers.
func (r QualificationResult) Count() int {
	return len(r.Offers)
}
