// Command shadow_compare replays task resolution for a list of students
// against both this service and the legacy portal and reports where the two
// disagree. Run it against production reads before cutting a department over.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

type taskRow struct {
	FacultyName string `json:"faculty_name"`
	SubjectName string `json:"subject_name"`
	Semester    string `json:"semester"`
	Status      string `json:"status"`
}

// legacyTaskRow is the shape the portal's Node API returns: camelCase keys,
// no envelope.
type legacyTaskRow struct {
	FacultyName string `json:"facultyName"`
	SubjectName string `json:"subjectName"`
	Semester    string `json:"semester"`
	Status      string `json:"status"`
}

type envelope struct {
	Data struct {
		Tasks []taskRow `json:"tasks"`
	} `json:"data"`
}

type comparison struct {
	StudentID      string
	GoStatus       int
	LegacyStatus   int
	Match          bool
	GoOnly         []string
	LegacyOnly     []string
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		apiBase      string
		apiPrefix    string
		legacyBase   string
		studentsPath string
		grouped      bool
		timeout      time.Duration
	)

	flag.StringVar(&apiBase, "api-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&apiPrefix, "api-prefix", "/api/v1", "Go API route prefix")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy portal base URL")
	flag.StringVar(&studentsPath, "students", "", "Path to file with one student id per line")
	flag.BoolVar(&grouped, "grouped", false, "Compare the grouped-by-subject view")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	studentIDs, err := loadStudentIDs(studentsPath)
	if err != nil {
		log.Fatalf("failed to load student ids: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var results []comparison
	diffs := 0
	for _, studentID := range studentIDs {
		comp := compareStudent(client, apiBase, apiPrefix, legacyBase, studentID, grouped)
		if comp.Error != nil || !comp.Match {
			diffs++
		}
		results = append(results, comp)
	}

	printReport(results)
	fmt.Printf("Students compared: %d, diffs: %d\n", len(results), diffs)
	if diffs > 0 {
		os.Exit(1)
	}
}

func loadStudentIDs(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("-students is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no student ids in %s", path)
	}
	return ids, nil
}

func compareStudent(client *http.Client, apiBase, apiPrefix, legacyBase, studentID string, grouped bool) comparison {
	comp := comparison{StudentID: studentID}

	goPath := fmt.Sprintf("%s/students/%s/tasks?fresh=true&groupBySubject=%t", apiPrefix, studentID, grouped)
	goStatus, goBody, goDur, err := fetch(client, apiBase, goPath)
	comp.DurationGo = goDur
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	comp.GoStatus = goStatus

	legacyPath := fmt.Sprintf("/feedback/tasks/%s?grouped=%t", studentID, grouped)
	legacyStatus, legacyBody, legacyDur, err := fetch(client, legacyBase, legacyPath)
	comp.DurationLegacy = legacyDur
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}
	comp.LegacyStatus = legacyStatus

	if goStatus != http.StatusOK || legacyStatus != http.StatusOK {
		comp.Match = goStatus == legacyStatus
		return comp
	}

	goKeys, err := goTaskKeys(goBody)
	if err != nil {
		comp.Error = fmt.Errorf("parse go body: %w", err)
		return comp
	}
	legacyKeys, err := legacyTaskKeys(legacyBody)
	if err != nil {
		comp.Error = fmt.Errorf("parse legacy body: %w", err)
		return comp
	}

	comp.GoOnly = difference(goKeys, legacyKeys)
	comp.LegacyOnly = difference(legacyKeys, goKeys)
	comp.Match = len(comp.GoOnly) == 0 && len(comp.LegacyOnly) == 0
	return comp
}

func fetch(client *http.Client, base, path string) (int, []byte, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func goTaskKeys(body []byte) ([]string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(env.Data.Tasks))
	for _, task := range env.Data.Tasks {
		keys = append(keys, taskKey(task.FacultyName, task.SubjectName, task.Semester, task.Status))
	}
	sort.Strings(keys)
	return keys, nil
}

func legacyTaskKeys(body []byte) ([]string, error) {
	var rows []legacyTaskRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, taskKey(row.FacultyName, row.SubjectName, row.Semester, row.Status))
	}
	sort.Strings(keys)
	return keys, nil
}

// taskKey folds the fields the two systems are expected to agree on. Ordering,
// ids and timestamps differ between the implementations and are not compared.
func taskKey(faculty, subject, semester, status string) string {
	fold := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return fold(faculty) + " | " + fold(subject) + " | " + fold(semester) + " | " + fold(status)
}

func difference(a, b []string) []string {
	inB := make(map[string]int, len(b))
	for _, key := range b {
		inB[key]++
	}
	var out []string
	for _, key := range a {
		if inB[key] > 0 {
			inB[key]--
			continue
		}
		out = append(out, key)
	}
	return out
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.Match {
			status = "DIFF"
		}
		fmt.Printf("[%s] student %s\n", status, res.StudentID)
		fmt.Printf("  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		for _, key := range res.GoOnly {
			fmt.Printf("  only in go: %s\n", key)
		}
		for _, key := range res.LegacyOnly {
			fmt.Printf("  only in legacy: %s\n", key)
		}
	}
}
