package evaluate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates final metrics across completed runs.
type Summary struct {
	Runs         int     `json:"runs"`
	MinRecall    float64 `json:"min_recall"`
	MeanRecall   float64 `json:"mean_recall"`
	MinWorkSave  float64 `json:"min_work_save"`
	MeanWorkSave float64 `json:"mean_work_save"`
}

// Aggregate computes the elementwise minimum and mean of final recall and
// work-save across runs. Returns a zero Summary for no input.
func Aggregate(finals []MetricsSnapshot) Summary {
	if len(finals) == 0 {
		return Summary{}
	}

	recalls := make([]float64, len(finals))
	workSaves := make([]float64, len(finals))
	for i, snap := range finals {
		recalls[i] = snap.Recall
		workSaves[i] = snap.WorkSave
	}

	return Summary{
		Runs:         len(finals),
		MinRecall:    floats.Min(recalls),
		MeanRecall:   stat.Mean(recalls, nil),
		MinWorkSave:  floats.Min(workSaves),
		MeanWorkSave: stat.Mean(workSaves, nil),
	}
}
