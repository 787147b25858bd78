package service

import (
	"strings"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// subjectRefSource identifies which record an assignment's subject reference
// resolved through.
type subjectRefSource string

const (
	refSubject  subjectRefSource = "subject"
	refLink     subjectRefSource = "link"
	refLinkCode subjectRefSource = "link-code"
)

// canonicalSubject is the single identity of a subject offering, independent
// of whether the assignment referenced the master record or a department link.
type canonicalSubject struct {
	ID   string
	Code string
	Name string
	// SubjectYearID is the master subject's own academic year when the master
	// row was found; LinkYearID is the resolving link's year when resolution
	// went through a link. Both normalized. The year resolver consumes them in
	// that order.
	SubjectYearID *string
	LinkYearID    *string
	Source        subjectRefSource
}

// subjectIndex resolves raw assignment subject references against one
// department's subjects and links. Resolution is pure: the same raw reference
// always yields the same result, so results are memoized per raw id.
type subjectIndex struct {
	subjectsByID   map[string]models.Subject
	linksByID      map[string]models.DepartmentSubject
	linksBySubject map[string][]models.DepartmentSubject
	linksByCode    map[string][]models.DepartmentSubject
	memo           map[string]resolvedRef
}

type resolvedRef struct {
	subject canonicalSubject
	ok      bool
}

func newSubjectIndex(subjects []models.Subject, links []models.DepartmentSubject) *subjectIndex {
	ix := &subjectIndex{
		subjectsByID:   make(map[string]models.Subject, len(subjects)),
		linksByID:      make(map[string]models.DepartmentSubject, len(links)),
		linksBySubject: make(map[string][]models.DepartmentSubject),
		linksByCode:    make(map[string][]models.DepartmentSubject),
		memo:           make(map[string]resolvedRef),
	}
	for _, subject := range subjects {
		if id, ok := NormalizeIdentifier(subject.ID); ok {
			ix.subjectsByID[id] = subject
		}
	}
	for _, link := range links {
		id, ok := NormalizeIdentifier(link.ID)
		if !ok {
			continue
		}
		ix.linksByID[id] = link
		if subjectID, ok := NormalizeIdentifier(link.SubjectID); ok {
			ix.linksBySubject[subjectID] = append(ix.linksBySubject[subjectID], link)
		}
		if code := strings.TrimSpace(link.SubjectCode); code != "" {
			ix.linksByCode[code] = append(ix.linksByCode[code], link)
		}
	}
	return ix
}

// resolve maps a raw assignment subject reference to its canonical subject.
// Order: master subject by id, then department link by id (subject through the
// link, synthetic from the link's denormalized code when the master row is
// gone). ok=false means unresolved; the assignment is excluded from output and
// reported, never patched over with a placeholder.
func (ix *subjectIndex) resolve(rawSubjectID string) (canonicalSubject, bool) {
	id, ok := NormalizeIdentifier(rawSubjectID)
	if !ok {
		return canonicalSubject{}, false
	}
	if cached, seen := ix.memo[id]; seen {
		return cached.subject, cached.ok
	}
	subject, ok := ix.resolveRef(id)
	ix.memo[id] = resolvedRef{subject: subject, ok: ok}
	return subject, ok
}

func (ix *subjectIndex) resolveRef(id string) (canonicalSubject, bool) {
	if subject, found := ix.subjectsByID[id]; found {
		return canonicalSubject{
			ID:            id,
			Code:          strings.TrimSpace(subject.Code),
			Name:          subject.Name,
			SubjectYearID: normalizeOptional(subject.AcademicYearID),
			Source:        refSubject,
		}, true
	}

	link, found := ix.linksByID[id]
	if !found {
		return canonicalSubject{}, false
	}
	linkYear := normalizeOptional(link.AcademicYearID)

	if subjectID, ok := NormalizeIdentifier(link.SubjectID); ok {
		if subject, found := ix.subjectsByID[subjectID]; found {
			return canonicalSubject{
				ID:            subjectID,
				Code:          strings.TrimSpace(subject.Code),
				Name:          subject.Name,
				SubjectYearID: normalizeOptional(subject.AcademicYearID),
				LinkYearID:    linkYear,
				Source:        refLink,
			}, true
		}
		// Master row missing but the link still names it. Keep the master id
		// as the canonical identity so other links to the same subject merge.
		return canonicalSubject{
			ID:         subjectID,
			Code:       strings.TrimSpace(link.SubjectCode),
			Name:       link.SubjectCode,
			LinkYearID: linkYear,
			Source:     refLinkCode,
		}, true
	}

	// Link carries no usable subject reference at all; the denormalized code
	// is the only identity left.
	return canonicalSubject{
		ID:         id,
		Code:       strings.TrimSpace(link.SubjectCode),
		Name:       link.SubjectCode,
		LinkYearID: linkYear,
		Source:     refLinkCode,
	}, true
}
