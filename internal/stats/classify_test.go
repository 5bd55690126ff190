package stats

import (
	"testing"
	"time"

	"github.com/annoworks/annostat/models"
)

func stateWithHistory(entries ...models.PhaseHistoryEntry) PhaseState {
	h := NormalizedHistory{}
	for _, e := range entries {
		h[e.Phase] = append(h[e.Phase], e)
	}
	return PhaseState{
		Phase:        models.PhaseAnnotation,
		CurrentPhase: models.PhaseAnnotation,
		TaskStatus:   models.TaskStatusWorking,
		Summary:      h.Summarize(models.PhaseAnnotation),
	}
}

func TestClassify_NoHistoryNoAssignee(t *testing.T) {
	s := stateWithHistory()

	got := Classify(s, 0)
	if got != models.CategoryNeverWorkedUnassigned {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryNeverWorkedUnassigned)
	}

	// Threshold must not matter when no history exists.
	got = Classify(s, time.Hour)
	if got != models.CategoryNeverWorkedUnassigned {
		t.Errorf("Classify() with threshold = %s, want %s", got, models.CategoryNeverWorkedUnassigned)
	}
}

func TestClassify_NoHistoryPreAssigned(t *testing.T) {
	s := stateWithHistory()
	s.Assignee = "user-1"

	if got := Classify(s, 0); got != models.CategoryNeverWorkedAssigned {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryNeverWorkedAssigned)
	}
}

func TestClassify_BelowThreshold(t *testing.T) {
	entry := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   30 * time.Second,
	}

	s := stateWithHistory(entry)
	if got := Classify(s, 60*time.Second); got != models.CategoryNeverWorkedUnassigned {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryNeverWorkedUnassigned)
	}

	s.Assignee = "user-1"
	if got := Classify(s, 60*time.Second); got != models.CategoryNeverWorkedAssigned {
		t.Errorf("Classify() with assignee = %s, want %s", got, models.CategoryNeverWorkedAssigned)
	}
}

func TestClassify_AboveThreshold(t *testing.T) {
	entry := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   90 * time.Second,
	}

	s := stateWithHistory(entry)
	s.Assignee = "user-1"
	if got := Classify(s, 60*time.Second); got != models.CategoryWorkedNotRejected {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryWorkedNotRejected)
	}
}

func TestClassify_RejectedBack(t *testing.T) {
	// Inspection worked for 500s, then acceptance sent the task back.
	entry := models.PhaseHistoryEntry{
		Phase:               models.PhaseInspection,
		PhaseStage:          1,
		Worked:              true,
		Worktime:            500 * time.Second,
		RejectedByNextPhase: true,
	}
	h := NormalizedHistory{models.PhaseInspection: {entry}}

	s := PhaseState{
		Phase:        models.PhaseInspection,
		CurrentPhase: models.PhaseInspection,
		TaskStatus:   models.TaskStatusWorking,
		Assignee:     "user-1",
		Summary:      h.Summarize(models.PhaseInspection),
	}
	if got := Classify(s, 60*time.Second); got != models.CategoryWorkedRejected {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryWorkedRejected)
	}
}

// Threshold suppression must win over a rejection flag: below-threshold work
// is never reported as rejected. Easy to invert accidentally, hence pinned.
func TestClassify_ThresholdSuppressesRejection(t *testing.T) {
	entry := models.PhaseHistoryEntry{
		Phase:               models.PhaseAnnotation,
		PhaseStage:          1,
		Worked:              true,
		Worktime:            10 * time.Second,
		RejectedByNextPhase: true,
	}

	s := stateWithHistory(entry)
	s.Assignee = "user-1"
	got := Classify(s, 60*time.Second)
	if got != models.CategoryNeverWorkedAssigned {
		t.Errorf("Classify() = %s, want %s (threshold suppression before rejection)", got, models.CategoryNeverWorkedAssigned)
	}
}

func TestClassify_ZeroDurationWorkedEntry(t *testing.T) {
	// A worked entry with zero duration is not worked for threshold purposes
	// but still carries its rejection marker.
	rejected := models.PhaseHistoryEntry{
		Phase:               models.PhaseAnnotation,
		PhaseStage:          1,
		Worked:              true,
		Worktime:            0,
		RejectedByNextPhase: true,
	}
	worked := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   2 * time.Minute,
	}

	s := stateWithHistory(worked, rejected)
	if got := Classify(s, 0); got != models.CategoryWorkedRejected {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryWorkedRejected)
	}
}

func TestClassify_ReworkClearsRejection(t *testing.T) {
	rejected := models.PhaseHistoryEntry{
		Phase:               models.PhaseAnnotation,
		PhaseStage:          1,
		Worked:              true,
		Worktime:            time.Minute,
		RejectedByNextPhase: true,
	}
	rework := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   3 * time.Minute,
	}

	s := stateWithHistory(rejected, rework)
	if got := Classify(s, 0); got != models.CategoryWorkedNotRejected {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryWorkedNotRejected)
	}
}

func TestClassify_OnHoldCurrentPhaseOnly(t *testing.T) {
	entry := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   time.Hour,
	}
	h := NormalizedHistory{models.PhaseAnnotation: {entry}}

	current := PhaseState{
		Phase:        models.PhaseInspection,
		CurrentPhase: models.PhaseInspection,
		TaskStatus:   models.TaskStatusOnHold,
		Summary:      h.Summarize(models.PhaseInspection),
	}
	if got := Classify(current, 0); got != models.CategoryOnHold {
		t.Errorf("Classify(current phase) = %s, want %s", got, models.CategoryOnHold)
	}

	earlier := PhaseState{
		Phase:        models.PhaseAnnotation,
		CurrentPhase: models.PhaseInspection,
		TaskStatus:   models.TaskStatusOnHold,
		Assignee:     "user-1",
		Summary:      h.Summarize(models.PhaseAnnotation),
	}
	if got := Classify(earlier, 0); got == models.CategoryOnHold {
		t.Errorf("Classify(earlier phase) = %s; on hold applies to the current phase only", got)
	}
}

func TestClassify_CompleteCoversEarlierPhases(t *testing.T) {
	for _, phase := range []models.Phase{models.PhaseAnnotation, models.PhaseInspection, models.PhaseAcceptance} {
		s := PhaseState{
			Phase:        phase,
			CurrentPhase: models.PhaseAcceptance,
			TaskStatus:   models.TaskStatusComplete,
		}
		if got := Classify(s, 0); got != models.CategoryComplete {
			t.Errorf("Classify(%s) = %s, want %s", phase, got, models.CategoryComplete)
		}
	}
}

func TestClassify_RejectionCounterWithoutMarker(t *testing.T) {
	entry := models.PhaseHistoryEntry{
		Phase:      models.PhaseAnnotation,
		PhaseStage: 1,
		Worked:     true,
		Worktime:   10 * time.Minute,
	}

	// Task sent back to annotation: counter is set, no marker in history.
	s := stateWithHistory(entry)
	s.Rejections = 1
	if got := Classify(s, 0); got != models.CategoryWorkedRejected {
		t.Errorf("Classify() = %s, want %s", got, models.CategoryWorkedRejected)
	}

	// Task advanced past annotation again: the phase was re-completed.
	s.CurrentPhase = models.PhaseAcceptance
	if got := Classify(s, 0); got != models.CategoryWorkedNotRejected {
		t.Errorf("Classify() after re-completion = %s, want %s", got, models.CategoryWorkedNotRejected)
	}
}

// Every reachable input must map to exactly one of the six categories.
func TestClassify_Totality(t *testing.T) {
	worked := models.PhaseHistoryEntry{Phase: models.PhaseAnnotation, PhaseStage: 1, Worked: true, Worktime: time.Minute}
	rejected := worked
	rejected.RejectedByNextPhase = true

	histories := []NormalizedHistory{
		{},
		{models.PhaseAnnotation: {worked}},
		{models.PhaseAnnotation: {rejected}},
		{models.PhaseAnnotation: {rejected, worked}},
	}
	statuses := []models.TaskStatus{
		models.TaskStatusNotStarted, models.TaskStatusWorking,
		models.TaskStatusOnHold, models.TaskStatusBreak, models.TaskStatusComplete,
	}
	thresholds := []time.Duration{0, 30 * time.Second, time.Hour}

	for _, h := range histories {
		for _, status := range statuses {
			for _, assignee := range []string{"", "user-1"} {
				for _, threshold := range thresholds {
					s := PhaseState{
						Phase:        models.PhaseAnnotation,
						CurrentPhase: models.PhaseAnnotation,
						TaskStatus:   status,
						Assignee:     assignee,
						Summary:      h.Summarize(models.PhaseAnnotation),
					}
					got := Classify(s, threshold)
					if got.Index() < 0 {
						t.Fatalf("Classify() produced unknown category %q", got)
					}
					if s.Summary.Worked <= threshold && (got == models.CategoryWorkedNotRejected || got == models.CategoryWorkedRejected) {
						t.Errorf("Classify() = %s with worked %v <= threshold %v", got, s.Summary.Worked, threshold)
					}
				}
			}
		}
	}
}
