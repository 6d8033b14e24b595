package collection

// SetSummary aggregates owned counts for one set.
type SetSummary struct {
	Code        string
	Name        string
	ReleaseDate string
	Type        string
	Printings   int
	UniqueOwned int // printings with at least one owned copy
	TotalOwned  int
	ByType      map[CountType]int
}

// Summaries returns one summary per set in set order.
func (c *Collection) Summaries() []SetSummary {
	summaries := make([]SetSummary, 0, len(c.sets))
	for _, set := range c.sets {
		s := SetSummary{
			Code:        set.Code,
			Name:        set.Name,
			ReleaseDate: set.ReleaseDate,
			Type:        set.Type,
			Printings:   len(set.Printings),
			ByType:      make(map[CountType]int),
		}
		for _, p := range set.Printings {
			if !p.Owned() {
				continue
			}
			s.UniqueOwned++
			for ct, n := range p.Counts {
				s.ByType[ct] += n
				s.TotalOwned += n
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
