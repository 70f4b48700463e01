package checkpoint

import (
	"fmt"
	"strings"
)

// Tracker receives replayed history rows, typically a live loss/accuracy
// plotter. redraw is false during replay so the consumer repaints once at
// the end instead of once per epoch.
type Tracker interface {
	AddValues(epoch int, lossTrain, lossVal, accTrain, accVal float64, redraw bool)
}

// HistoryPath expands a history file template like
// "experiments/{identifier}.history.csv" for one run identifier.
func HistoryPath(template, identifier string) string {
	return strings.ReplaceAll(template, "{identifier}", identifier)
}

// Resume restores a previous experiment: loads its weights into the model,
// reads the matching history truncated to the resolved epoch, and replays
// every row into the tracker in epoch order. A missing checkpoint is fatal
// here, unlike in LoadWeights, because the caller asked to continue a run
// that must already exist. Returns the last finished epoch and the history.
func Resume(model Model, tracker Tracker, weightsDir, historyTemplate, identifier string) (int, *History, error) {
	found, marker, err := LoadWeights(model, weightsDir, identifier)
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return 0, nil, fmt.Errorf("cannot continue run %q: no weights saved yet", identifier)
	}

	history, err := LoadHistory(HistoryPath(historyTemplate, identifier), marker)
	if err != nil {
		return 0, nil, err
	}
	if len(history.Rows) == 0 {
		return 0, nil, fmt.Errorf("history for run %q contains no rows", identifier)
	}

	if tracker != nil {
		for _, row := range history.Rows {
			tracker.AddValues(row.Epoch, row.LossTrain, row.LossVal, row.AccTrain, row.AccVal, false)
		}
	}
	return history.LastEpoch(), history, nil
}
