package interview

import "slices"

// Aggregate recomputes the performance snapshot from the full attempt list.
// It is a pure function of its inputs: categories without an answered
// attempt keep the value they had in prev, everything else is derived from
// attempts alone. Permuting attempts does not change the result.
func Aggregate(prev Performance, attempts []Attempt) Performance {
	out := prev
	out.TotalQuestions = len(attempts)

	var overall, timeEff []float64
	byCat := make(map[Category][]float64, len(AllCategories))
	for _, a := range attempts {
		if !a.Answered() {
			continue
		}
		overall = append(overall, a.Score.Overall)
		timeEff = append(timeEff, a.Score.TimeEfficiency)
		byCat[a.Category] = append(byCat[a.Category], a.Score.Overall)
	}

	out.QuestionsAnswered = len(overall)
	if len(overall) == 0 {
		return out
	}
	out.AverageScore = mean(overall)
	out.TimeManagement = mean(timeEff)
	for _, c := range AllCategories {
		if vs, ok := byCat[c]; ok {
			out.setCategoryScore(c, mean(vs))
		}
	}
	return out
}

// mean sorts before summing so floating point rounding is the same for
// every ordering of vs. vs is modified.
func mean(vs []float64) float64 {
	slices.Sort(vs)
	var total float64
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}
