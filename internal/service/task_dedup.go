package service

import (
	"strings"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// taskCandidate is one assignment row after subject and year resolution,
// before deduplication and joining.
type taskCandidate struct {
	Assignment models.FacultyAssignment
	Subject    canonicalSubject
	Year       yearResolution
}

func (c taskCandidate) dedupKey() string {
	staffID, _ := NormalizeIdentifier(c.Assignment.StaffID)
	return staffID + "::" + c.Subject.ID + "::" + foldSemester(c.Assignment.Semester)
}

// foldSemester trims and case-folds only. Two differently formatted semester
// strings for the same offering are a data-entry defect to report, not merge:
// merging them blindly could hide real distinct offerings.
func foldSemester(semester string) string {
	return strings.ToLower(strings.TrimSpace(semester))
}

// dedupeCandidates collapses rows denoting the same (staff, canonical subject,
// semester) fact into one. The survivor is the row with the earliest created
// timestamp; rows without a timestamp lose to rows with one, and when no row
// in the group has one the first encountered survives. Dropped duplicates are
// expected, not an error.
func dedupeCandidates(in []taskCandidate) ([]taskCandidate, int) {
	byKey := make(map[string]int, len(in))
	out := make([]taskCandidate, 0, len(in))
	dropped := 0
	for _, candidate := range in {
		key := candidate.dedupKey()
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, candidate)
			continue
		}
		dropped++
		if createdEarlier(candidate.Assignment, out[idx].Assignment) {
			out[idx] = candidate
		}
	}
	return out, dropped
}

func createdEarlier(a, b models.FacultyAssignment) bool {
	switch {
	case a.CreatedAt == nil:
		return false
	case b.CreatedAt == nil:
		return true
	default:
		return a.CreatedAt.Before(*b.CreatedAt)
	}
}

// semesterVariant reports a staff+subject pair whose rows carry semester
// strings that survive folding as distinct values yet collapse once all
// whitespace is removed, the signature of inconsistent data entry.
type semesterVariant struct {
	StaffID   string
	SubjectID string
	Semesters []string
}

func semesterFormatVariants(in []taskCandidate) []semesterVariant {
	type group struct {
		staffID   string
		subjectID string
		folded    map[string]struct{}
	}
	groups := make(map[string]*group)
	for _, candidate := range in {
		staffID, _ := NormalizeIdentifier(candidate.Assignment.StaffID)
		collapsed := strings.ReplaceAll(foldSemester(candidate.Assignment.Semester), " ", "")
		key := staffID + "::" + candidate.Subject.ID + "::" + collapsed
		g, ok := groups[key]
		if !ok {
			g = &group{staffID: staffID, subjectID: candidate.Subject.ID, folded: make(map[string]struct{})}
			groups[key] = g
		}
		g.folded[foldSemester(candidate.Assignment.Semester)] = struct{}{}
	}

	var variants []semesterVariant
	for _, g := range groups {
		if len(g.folded) < 2 {
			continue
		}
		semesters := make([]string, 0, len(g.folded))
		for semester := range g.folded {
			semesters = append(semesters, semester)
		}
		variants = append(variants, semesterVariant{StaffID: g.staffID, SubjectID: g.subjectID, Semesters: semesters})
	}
	return variants
}
