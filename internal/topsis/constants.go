package topsis

const (
	MinCriteria = 2
	// MinColumns is the identifier column plus MinCriteria.
	MinColumns = MinCriteria + 1

	ScoreColumn = "Topsis Score"
	RankColumn  = "Rank"
)
