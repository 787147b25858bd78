package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/models"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
)

type studentGetter interface {
	GetByID(ctx context.Context, studentID string) (*models.Student, error)
}

type departmentGetter interface {
	GetByID(ctx context.Context, departmentID string) (*models.Department, error)
}

type academicYearLister interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]models.AcademicYear, error)
}

type linkLister interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]models.DepartmentSubject, error)
}

type subjectLister interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Subject, error)
}

type assignmentReader interface {
	ListBySubjectIDs(ctx context.Context, subjectIDs []string) ([]models.FacultyAssignment, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]models.FacultyAssignment, error)
}

type staffDetailLister interface {
	ListDetailsByIDs(ctx context.Context, staffIDs []string) ([]models.StaffDetail, error)
}

type feedbackReader interface {
	SubmittedAssignmentIDs(ctx context.Context, studentID string) ([]string, error)
}

// TaskServiceConfig tunes task resolution behaviour.
type TaskServiceConfig struct {
	CacheTTL time.Duration
}

// TaskService resolves the authoritative set of feedback tasks a student must
// complete from the portal's denormalized assignment data.
type TaskService struct {
	students    studentGetter
	departments departmentGetter
	years       academicYearLister
	links       linkLister
	subjects    subjectLister
	assignments assignmentReader
	staff       staffDetailLister
	feedback    feedbackReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
	cfg         TaskServiceConfig
}

// TaskServiceParams groups constructor dependencies.
type TaskServiceParams struct {
	Students    studentGetter
	Departments departmentGetter
	Years       academicYearLister
	Links       linkLister
	Subjects    subjectLister
	Assignments assignmentReader
	Staff       staffDetailLister
	Feedback    feedbackReader
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	Config      TaskServiceConfig
}

// NewTaskService constructs a TaskService with sane defaults.
func NewTaskService(params TaskServiceParams) *TaskService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		students:    params.Students,
		departments: params.Departments,
		years:       params.Years,
		links:       params.Links,
		subjects:    params.Subjects,
		assignments: params.Assignments,
		staff:       params.Staff,
		feedback:    params.Feedback,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// TaskQueryOptions control task list shape and cache usage. Fresh bypasses the
// read-through cache for callers that need guaranteed freshness, such as reads
// immediately after an administrative edit.
type TaskQueryOptions struct {
	GroupBySubject bool
	Fresh          bool
}

func taskCacheKey(studentID string, grouped bool) string {
	return fmt.Sprintf("tasks:%s:%t", studentID, grouped)
}

// ResolveTasksForStudent returns the student's feedback tasks. The second
// return value reports whether the response came from cache.
func (s *TaskService) ResolveTasksForStudent(ctx context.Context, studentID string, opts TaskQueryOptions) (*dto.TaskListResponse, bool, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, err
	}

	cacheKey := taskCacheKey(studentID, opts.GroupBySubject)
	if !opts.Fresh && s.cache != nil {
		var cached dto.TaskListResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	start := s.now()
	run, err := s.resolveDepartmentAssignments(ctx, student.DepartmentID)
	if err != nil {
		return nil, false, err
	}

	studentYear, ok := NormalizeIdentifier(student.AcademicYearID)
	if !ok {
		// A task can only be shown when its year provably equals the
		// student's; a student without a year therefore gets none.
		s.logger.Warn("student has no usable academic year",
			zap.String("student_id", studentID),
			zap.String("raw_year", student.AcademicYearID))
	}

	survivors, dropped, unknownCount := s.filterAndDedup(run.candidates, studentYear)

	tasks, err := s.assembleTasks(ctx, studentID, survivors, opts.GroupBySubject)
	if err != nil {
		return nil, false, err
	}

	if s.metrics != nil {
		s.metrics.ObserveResolution(s.now().Sub(start), len(run.unresolved), run.ambiguous, dropped, unknownCount)
	}

	result := &dto.TaskListResponse{
		StudentID:        studentID,
		DepartmentID:     student.DepartmentID,
		AcademicYearID:   student.AcademicYearID,
		GroupedBySubject: opts.GroupBySubject,
		Tasks:            tasks,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("task cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return result, false, nil
}

// departmentResolution is the outcome of resolving every candidate assignment
// of one department, before year filtering and deduplication.
type departmentResolution struct {
	index      *subjectIndex
	candidates []taskCandidate
	unresolved []models.UnresolvedAssignment
	ambiguous  int
}

func (s *TaskService) resolveDepartmentAssignments(ctx context.Context, departmentID string) (*departmentResolution, error) {
	links, err := s.links.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	// Assignments may reference a subject by its master id or by the link's
	// own id, so both id sets are candidates.
	possible := make([]string, 0, len(links)*2)
	seen := make(map[string]struct{}, len(links)*2)
	addID := func(raw interface{}) {
		if id, ok := NormalizeIdentifier(raw); ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				possible = append(possible, id)
			}
		}
	}
	for _, link := range links {
		addID(link.ID)
		addID(link.SubjectID)
	}

	bySubject, err := s.assignments.ListBySubjectIDs(ctx, possible)
	if err != nil {
		return nil, err
	}
	// The subject-id query compares the raw column value, which misses rows
	// stored under a legacy encoding. The department query catches those; the
	// union is deduplicated by assignment id and membership is decided by the
	// in-memory resolver, never by raw equality alone.
	byDepartment, err := s.assignments.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	assignments := make([]models.FacultyAssignment, 0, len(bySubject)+len(byDepartment))
	assignmentSeen := make(map[string]struct{}, len(bySubject)+len(byDepartment))
	for _, batch := range [][]models.FacultyAssignment{bySubject, byDepartment} {
		for _, assignment := range batch {
			key, ok := NormalizeIdentifier(assignment.ID)
			if !ok {
				key = assignment.ID
			}
			if _, dup := assignmentSeen[key]; dup {
				continue
			}
			assignmentSeen[key] = struct{}{}
			assignments = append(assignments, assignment)
		}
	}

	subjectIDs := make([]string, 0, len(links)+len(assignments))
	subjectSeen := make(map[string]struct{}, len(links)+len(assignments))
	addSubjectID := func(raw interface{}) {
		if id, ok := NormalizeIdentifier(raw); ok {
			if _, dup := subjectSeen[id]; !dup {
				subjectSeen[id] = struct{}{}
				subjectIDs = append(subjectIDs, id)
			}
		}
	}
	for _, link := range links {
		addSubjectID(link.SubjectID)
	}
	for _, assignment := range assignments {
		addSubjectID(assignment.SubjectID)
	}

	subjects, err := s.subjects.ListByIDs(ctx, subjectIDs)
	if err != nil {
		return nil, err
	}

	run := &departmentResolution{index: newSubjectIndex(subjects, links)}
	for _, assignment := range assignments {
		subject, ok := run.index.resolve(assignment.SubjectID)
		if !ok {
			run.unresolved = append(run.unresolved, models.UnresolvedAssignment{
				AssignmentID: assignment.ID,
				RawSubjectID: assignment.SubjectID,
				DepartmentID: departmentID,
			})
			s.logger.Warn("assignment subject reference unresolved",
				zap.String("assignment_id", assignment.ID),
				zap.String("raw_subject_id", assignment.SubjectID),
				zap.String("department_id", departmentID))
			continue
		}
		year := run.index.resolveAcademicYear(assignment, subject)
		if year.Ambiguous {
			run.ambiguous++
			s.logger.Warn("shared-subject year resolved among multiple links",
				zap.String("assignment_id", assignment.ID),
				zap.String("subject_code", subject.Code),
				zap.Int("candidates", year.Candidates),
				zap.Bool("first_link_tiebreak", year.TieBreakFirstLink))
		}
		run.candidates = append(run.candidates, taskCandidate{Assignment: assignment, Subject: subject, Year: year})
	}
	return run, nil
}

func (s *TaskService) filterAndDedup(candidates []taskCandidate, studentYear string) ([]taskCandidate, int, int) {
	inYear := make([]taskCandidate, 0, len(candidates))
	unknownCount := 0
	for _, candidate := range candidates {
		if !candidate.Year.Known() {
			unknownCount++
			continue
		}
		if studentYear == "" || candidate.Year.YearID != studentYear {
			continue
		}
		inYear = append(inYear, candidate)
	}

	for _, variant := range semesterFormatVariants(inYear) {
		s.logger.Warn("semester formatting variants for one offering",
			zap.String("staff_id", variant.StaffID),
			zap.String("subject_id", variant.SubjectID),
			zap.Strings("semesters", variant.Semesters))
	}

	survivors, dropped := dedupeCandidates(inYear)
	return survivors, dropped, unknownCount
}

func (s *TaskService) assembleTasks(ctx context.Context, studentID string, survivors []taskCandidate, groupBySubject bool) ([]models.Task, error) {
	if len(survivors) == 0 {
		return []models.Task{}, nil
	}

	staffIDs := make([]string, 0, len(survivors))
	staffSeen := make(map[string]struct{}, len(survivors))
	for _, candidate := range survivors {
		if id, ok := NormalizeIdentifier(candidate.Assignment.StaffID); ok {
			if _, dup := staffSeen[id]; !dup {
				staffSeen[id] = struct{}{}
				staffIDs = append(staffIDs, id)
			}
		}
	}
	staffDetails, err := s.staff.ListDetailsByIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	namesByStaff := make(map[string]string, len(staffDetails))
	for _, detail := range staffDetails {
		if id, ok := NormalizeIdentifier(detail.ID); ok {
			namesByStaff[id] = detail.FullName
		}
	}

	submittedIDs, err := s.feedback.SubmittedAssignmentIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	submitted := make(map[string]struct{}, len(submittedIDs))
	for _, raw := range submittedIDs {
		if id, ok := NormalizeIdentifier(raw); ok {
			submitted[id] = struct{}{}
		}
	}

	tasks := make([]models.Task, 0, len(survivors))
	statusFor := func(candidate taskCandidate) models.TaskStatus {
		id, _ := NormalizeIdentifier(candidate.Assignment.ID)
		if _, done := submitted[id]; done {
			return models.TaskCompleted
		}
		return models.TaskPending
	}
	facultyFor := func(candidate taskCandidate) string {
		staffID, _ := NormalizeIdentifier(candidate.Assignment.StaffID)
		if name := namesByStaff[staffID]; name != "" {
			return name
		}
		return staffID
	}

	if !groupBySubject {
		for _, candidate := range survivors {
			yearID := candidate.Year.YearID
			tasks = append(tasks, models.Task{
				AssignmentID:   candidate.Assignment.ID,
				FacultyName:    facultyFor(candidate),
				SubjectID:      candidate.Subject.ID,
				SubjectName:    candidate.Subject.Name,
				AcademicYearID: &yearID,
				Semester:       strings.TrimSpace(candidate.Assignment.Semester),
				Status:         statusFor(candidate),
			})
		}
	} else {
		// One row per canonical subject. Completed only when every
		// underlying assignment has been evaluated.
		order := make([]string, 0, len(survivors))
		grouped := make(map[string][]taskCandidate, len(survivors))
		for _, candidate := range survivors {
			if _, ok := grouped[candidate.Subject.ID]; !ok {
				order = append(order, candidate.Subject.ID)
			}
			grouped[candidate.Subject.ID] = append(grouped[candidate.Subject.ID], candidate)
		}
		for _, subjectID := range order {
			members := grouped[subjectID]
			representative := members[0]
			for _, member := range members[1:] {
				if createdEarlier(member.Assignment, representative.Assignment) {
					representative = member
				}
			}
			names := make([]string, 0, len(members))
			nameSeen := make(map[string]struct{}, len(members))
			allDone := true
			for _, member := range members {
				if statusFor(member) != models.TaskCompleted {
					allDone = false
				}
				name := facultyFor(member)
				if _, dup := nameSeen[name]; !dup && name != "" {
					nameSeen[name] = struct{}{}
					names = append(names, name)
				}
			}
			status := models.TaskPending
			if allDone {
				status = models.TaskCompleted
			}
			yearID := representative.Year.YearID
			tasks = append(tasks, models.Task{
				AssignmentID:   representative.Assignment.ID,
				FacultyName:    strings.Join(names, ", "),
				SubjectID:      subjectID,
				SubjectName:    representative.Subject.Name,
				AcademicYearID: &yearID,
				Semester:       strings.TrimSpace(representative.Assignment.Semester),
				Status:         status,
			})
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].SubjectName != tasks[j].SubjectName {
			return tasks[i].SubjectName < tasks[j].SubjectName
		}
		return tasks[i].FacultyName < tasks[j].FacultyName
	})
	return tasks, nil
}
