package repository

import (
	"errors"
	"fmt"
	"time"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/util"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create persists a submission. Uniqueness of (student, assessment) is
// enforced by the composite unique index, so two concurrent submits race on
// the insert itself, not on an application-level existence check; the loser
// gets ErrDuplicateSubmission. Any other storage failure comes back as
// ErrPersistence and leaves no partial record behind.
func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return TranslateCreateError(r.DB.Create(submission).Error)
}

// TranslateCreateError maps storage errors from the submission insert to
// the pipeline's error taxonomy.
func TranslateCreateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateSubmission
	}
	return fmt.Errorf("%w: %v", util.ErrPersistence, err)
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("Student").Preload("School").Preload("Assessment").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByStudentAndAssessment(studentID, assessmentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("student_id = ? AND assessment_id = ?", studentID, assessmentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// SubmissionFilter narrows an aggregation pass. Every field is optional;
// set fields combine as a conjunction inside one query, never as
// sequential passes over intermediate result sets.
type SubmissionFilter struct {
	SchoolID     uint
	AssessmentID uint
	Bucket       model.Bucket
	Class        string
	Section      string
	Search       string // matches student name or access ID
	StartDate    *time.Time
	EndDate      *time.Time
}

// scope applies the filter as a single combined WHERE over submissions
// joined with students.
func (f SubmissionFilter) scope(db *gorm.DB) *gorm.DB {
	q := db.Model(&model.Submission{}).
		Joins("JOIN students ON students.id = submissions.student_id")

	if f.SchoolID != 0 {
		q = q.Where("submissions.school_id = ?", f.SchoolID)
	}
	if f.AssessmentID != 0 {
		q = q.Where("submissions.assessment_id = ?", f.AssessmentID)
	}
	if f.Bucket != "" {
		q = q.Where("submissions.assigned_bucket = ?", f.Bucket)
	}
	if f.Class != "" {
		q = q.Where("students.class = ?", f.Class)
	}
	if f.Section != "" {
		q = q.Where("students.section = ?", f.Section)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("students.name LIKE ? OR students.access_id LIKE ?", like, like)
	}
	if f.StartDate != nil {
		q = q.Where("submissions.submitted_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("submissions.submitted_at <= ?", *f.EndDate)
	}

	return q
}

func (r *SubmissionRepository) Count(f SubmissionFilter) (int64, error) {
	var count int64
	err := f.scope(r.DB).Count(&count).Error
	return count, err
}

// Averages returns mean score and mean time over the matched set. COALESCE
// turns the NULL of an empty set into 0, so an empty dashboard never
// divides by zero.
func (r *SubmissionRepository) Averages(f SubmissionFilter) (avgScore, avgTime float64, err error) {
	var row struct {
		AvgScore float64
		AvgTime  float64
	}
	err = f.scope(r.DB).
		Select("COALESCE(AVG(submissions.total_score), 0) AS avg_score, COALESCE(AVG(submissions.time_taken), 0) AS avg_time").
		Scan(&row).Error
	return row.AvgScore, row.AvgTime, err
}

type bucketCountRow struct {
	Bucket model.Bucket
	Count  int64
}

// BucketCounts returns matched-set counts per assigned bucket. Buckets with
// no rows are absent here; the service layer zero-fills.
func (r *SubmissionRepository) BucketCounts(f SubmissionFilter) (map[model.Bucket]int64, error) {
	var rows []bucketCountRow
	err := f.scope(r.DB).
		Select("submissions.assigned_bucket AS bucket, COUNT(*) AS count").
		Group("submissions.assigned_bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Bucket]int64, len(rows))
	for _, row := range rows {
		counts[row.Bucket] = row.Count
	}
	return counts, nil
}

type groupStatsRow struct {
	Key      string
	Total    int64
	AvgScore float64
}

func (r *SubmissionRepository) SchoolBreakdown(f SubmissionFilter) (map[string]model.GroupStats, error) {
	var rows []groupStatsRow
	err := f.scope(r.DB).
		Joins("JOIN schools ON schools.id = submissions.school_id").
		Select("schools.name AS `key`, COUNT(*) AS total, COALESCE(AVG(submissions.total_score), 0) AS avg_score").
		Group("schools.id, schools.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupStatsFromRows(rows), nil
}

func (r *SubmissionRepository) ClassBreakdown(f SubmissionFilter) (map[string]model.GroupStats, error) {
	var rows []groupStatsRow
	err := f.scope(r.DB).
		Select("students.class AS `key`, COUNT(*) AS total, COALESCE(AVG(submissions.total_score), 0) AS avg_score").
		Group("students.class").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupStatsFromRows(rows), nil
}

func groupStatsFromRows(rows []groupStatsRow) map[string]model.GroupStats {
	stats := make(map[string]model.GroupStats, len(rows))
	for _, row := range rows {
		stats[row.Key] = model.GroupStats{Total: row.Total, AvgScore: row.AvgScore}
	}
	return stats
}

// Recent returns the matched set newest first, bounded to limit rows.
func (r *SubmissionRepository) Recent(f SubmissionFilter, limit int) ([]model.RecentSubmission, error) {
	var rows []model.RecentSubmission
	err := f.scope(r.DB).
		Joins("JOIN schools ON schools.id = submissions.school_id").
		Select(`submissions.id AS id,
			students.name AS student_name,
			students.access_id AS access_id,
			students.class AS class,
			students.section AS section,
			schools.name AS school_name,
			submissions.assessment_id AS assessment_id,
			submissions.total_score AS total_score,
			submissions.assigned_bucket AS assigned_bucket,
			submissions.time_taken AS time_taken,
			submissions.submitted_at AS submitted_at`).
		Order("submissions.submitted_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DistinctClasses lists the class labels of a school's registered students,
// used to populate dashboard filter dropdowns. It reads the roster, not
// submissions, so classes that have not submitted yet still appear.
func (r *SubmissionRepository) DistinctClasses(schoolID uint) ([]string, error) {
	var classes []string
	err := r.DB.Model(&model.Student{}).
		Where("school_id = ? AND class <> ''", schoolID).
		Distinct().
		Order("class").
		Pluck("class", &classes).Error
	return classes, err
}
