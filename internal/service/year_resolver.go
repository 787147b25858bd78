package service

import (
	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// UnknownAcademicYear is the sentinel returned when no fallback source yields
// a year. Assignments resolving to it are never attributed to a guessed year.
const UnknownAcademicYear = "unknown"

// yearResolution is the outcome of the academic-year fallback chain.
type yearResolution struct {
	YearID string
	Source string // "assignment", "subject", "link" or "unknown"
	// Candidates counts the links considered in the shared-subject step.
	// Ambiguous marks that more than one carried a year; TieBreakFirstLink
	// marks that none matched the assignment's department and the first link
	// found won, a path flagged for manual data audit.
	Candidates        int
	Ambiguous         bool
	TieBreakFirstLink bool
}

// Known reports whether the resolution produced an actual year.
func (r yearResolution) Known() bool {
	return r.YearID != UnknownAcademicYear
}

// resolveAcademicYear applies the fallback chain for one assignment, first
// non-empty wins: the assignment's own year, the master subject's year, the
// resolving link's year (matching links by subject id or code when the direct
// link carried none, preferring the link owned by the assignment's
// department), and finally the unknown sentinel. Assignment-level data is the
// most specific and most likely deliberately overridden; subject- and
// link-level data are successively weaker defaults.
func (ix *subjectIndex) resolveAcademicYear(assignment models.FacultyAssignment, subject canonicalSubject) yearResolution {
	if year, ok := NormalizeIdentifier(assignment.AcademicYearID); ok {
		return yearResolution{YearID: year, Source: "assignment"}
	}
	if subject.SubjectYearID != nil {
		return yearResolution{YearID: *subject.SubjectYearID, Source: "subject"}
	}
	if subject.LinkYearID != nil {
		return yearResolution{YearID: *subject.LinkYearID, Source: "link"}
	}

	candidates := ix.linkYearCandidates(subject)
	if len(candidates) == 0 {
		return yearResolution{YearID: UnknownAcademicYear, Source: "unknown"}
	}

	resolution := yearResolution{
		Source:     "link",
		Candidates: len(candidates),
		Ambiguous:  len(candidates) > 1,
	}
	departmentID, _ := NormalizeIdentifier(assignment.DepartmentID)
	for _, candidate := range candidates {
		if linkDept, ok := NormalizeIdentifier(candidate.link.DepartmentID); ok && linkDept == departmentID {
			resolution.YearID = candidate.yearID
			return resolution
		}
	}
	resolution.YearID = candidates[0].yearID
	resolution.TieBreakFirstLink = resolution.Ambiguous
	return resolution
}

type linkYearCandidate struct {
	link   models.DepartmentSubject
	yearID string
}

func (ix *subjectIndex) linkYearCandidates(subject canonicalSubject) []linkYearCandidate {
	links := ix.linksBySubject[subject.ID]
	if len(links) == 0 && subject.Code != "" {
		links = ix.linksByCode[subject.Code]
	}
	candidates := make([]linkYearCandidate, 0, len(links))
	for _, link := range links {
		if yearID := normalizeOptional(link.AcademicYearID); yearID != nil {
			candidates = append(candidates, linkYearCandidate{link: link, yearID: *yearID})
		}
	}
	return candidates
}
