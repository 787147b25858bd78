package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

func candidate(assignmentID, staffID, subjectID, semester string, created *time.Time) taskCandidate {
	return taskCandidate{
		Assignment: models.FacultyAssignment{
			ID:        assignmentID,
			StaffID:   staffID,
			SubjectID: subjectID,
			Semester:  semester,
			CreatedAt: created,
		},
		Subject: canonicalSubject{ID: subjectID},
		Year:    yearResolution{YearID: "year-1", Source: "assignment"},
	}
}

func TestDedupKeepsEarliestCreated(t *testing.T) {
	earlier := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(48 * time.Hour)

	survivors, dropped := dedupeCandidates([]taskCandidate{
		candidate("asg-new", "staff-1", "subj-1", "Odd 2025-26", &later),
		candidate("asg-old", "staff-1", "subj-1", "Odd 2025-26", &earlier),
	})
	require.Len(t, survivors, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "asg-old", survivors[0].Assignment.ID)
}

func TestDedupFirstEncounteredWhenNoTimestamps(t *testing.T) {
	survivors, dropped := dedupeCandidates([]taskCandidate{
		candidate("asg-a", "staff-1", "subj-1", "Odd 2025-26", nil),
		candidate("asg-b", "staff-1", "subj-1", "Odd 2025-26", nil),
	})
	require.Len(t, survivors, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "asg-a", survivors[0].Assignment.ID)
}

func TestDedupTimestampedBeatsUntimestamped(t *testing.T) {
	created := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	survivors, _ := dedupeCandidates([]taskCandidate{
		candidate("asg-untimed", "staff-1", "subj-1", "Odd 2025-26", nil),
		candidate("asg-timed", "staff-1", "subj-1", "Odd 2025-26", &created),
	})
	require.Len(t, survivors, 1)
	assert.Equal(t, "asg-timed", survivors[0].Assignment.ID)
}

func TestDedupInvariantOneSurvivorPerKey(t *testing.T) {
	created := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	var in []taskCandidate
	for i := 0; i < 5; i++ {
		ts := created.Add(time.Duration(i) * time.Hour)
		in = append(in, candidate("asg-1", "staff-1", "subj-1", "Odd 2025-26", &ts))
		in = append(in, candidate("asg-2", "staff-2", "subj-1", "Odd 2025-26", &ts))
	}

	survivors, dropped := dedupeCandidates(in)
	assert.Len(t, survivors, 2)
	assert.Equal(t, 8, dropped)
	keys := map[string]struct{}{}
	for _, s := range survivors {
		keys[s.dedupKey()] = struct{}{}
	}
	assert.Len(t, keys, 2)
}

func TestDedupSemesterCaseAndSpaceFoldOnly(t *testing.T) {
	// Same offering entered with different casing collapses; a genuinely
	// different semester string does not.
	survivors, _ := dedupeCandidates([]taskCandidate{
		candidate("asg-1", "staff-1", "subj-1", "Odd 2025-26", nil),
		candidate("asg-2", "staff-1", "subj-1", "  odd 2025-26 ", nil),
		candidate("asg-3", "staff-1", "subj-1", "Even 2025-26", nil),
	})
	assert.Len(t, survivors, 2)
}

func TestDedupDoesNotMergeAcrossStaffOrSubject(t *testing.T) {
	survivors, dropped := dedupeCandidates([]taskCandidate{
		candidate("asg-1", "staff-1", "subj-1", "Odd 2025-26", nil),
		candidate("asg-2", "staff-2", "subj-1", "Odd 2025-26", nil),
		candidate("asg-3", "staff-1", "subj-2", "Odd 2025-26", nil),
	})
	assert.Len(t, survivors, 3)
	assert.Zero(t, dropped)
}

func TestSemesterFormatVariantsReported(t *testing.T) {
	in := []taskCandidate{
		candidate("asg-1", "staff-1", "subj-1", "Odd 2025-26", nil),
		candidate("asg-2", "staff-1", "subj-1", "Odd  2025-26", nil),
	}
	variants := semesterFormatVariants(in)
	require.Len(t, variants, 1)
	assert.Equal(t, "staff-1", variants[0].StaffID)
	assert.Equal(t, "subj-1", variants[0].SubjectID)
	assert.Len(t, variants[0].Semesters, 2)

	// The two rows stay separate groups: formatting drift is reported, not
	// silently merged.
	survivors, _ := dedupeCandidates(in)
	assert.Len(t, survivors, 2)
}
