package compare

// Summary counts records by status.
type Summary struct {
	Total        int `json:"total"`
	Identical    int `json:"identical"`
	Different    int `json:"different"`
	MissingLeft  int `json:"missingLeft"`
	MissingRight int `json:"missingRight"`
}

func Summarize(recs []Record) Summary {
	s := Summary{Total: len(recs)}
	for _, r := range recs {
		switch r.Status {
		case Identical:
			s.Identical++
		case Different:
			s.Different++
		case MissingLeft:
			s.MissingLeft++
		case MissingRight:
			s.MissingRight++
		}
	}
	return s
}

// InSync reports whether every record is Identical.
func (s Summary) InSync() bool {
	return s.Total == s.Identical
}
