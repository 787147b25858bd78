package models

// TaskStatus is the completion state of a feedback task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
)

// Task is a resolved feedback obligation shown to a student: one faculty
// teaching one canonical subject for one semester. In grouped mode FacultyName
// holds all faculty for the subject joined with ", " and AssignmentID the
// earliest surviving assignment.
type Task struct {
	AssignmentID   string     `json:"assignment_id"`
	FacultyName    string     `json:"faculty_name"`
	SubjectID      string     `json:"subject_id"`
	SubjectName    string     `json:"subject_name"`
	AcademicYearID *string    `json:"academic_year_id"`
	Semester       string     `json:"semester"`
	Status         TaskStatus `json:"status"`
}

// UnresolvedAssignment records an assignment whose subject reference matched
// neither a Subject nor a DepartmentSubject row. Kept for offline review.
type UnresolvedAssignment struct {
	AssignmentID string `json:"assignment_id"`
	RawSubjectID string `json:"raw_subject_id"`
	DepartmentID string `json:"department_id"`
}

// UnknownYearAssignment records an assignment excluded from student task lists
// because no fallback source yielded an academic year.
type UnknownYearAssignment struct {
	AssignmentID string `json:"assignment_id"`
	StaffID      string `json:"staff_id"`
	SubjectID    string `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	Semester     string `json:"semester"`
	Reason       string `json:"reason"`
}
