package repository

import (
	"fmt"
	"testing"
	"time"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTranslateCreateError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, TranslateCreateError(nil))
	})

	t.Run("duplicate key becomes duplicate submission", func(t *testing.T) {
		err := TranslateCreateError(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, util.ErrDuplicateSubmission)
	})

	t.Run("wrapped duplicate key still detected", func(t *testing.T) {
		err := TranslateCreateError(fmt.Errorf("insert failed: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, util.ErrDuplicateSubmission)
	})

	t.Run("other storage errors become persistence errors", func(t *testing.T) {
		cause := fmt.Errorf("connection reset")
		err := TranslateCreateError(cause)
		assert.ErrorIs(t, err, util.ErrPersistence)
		assert.NotErrorIs(t, err, util.ErrDuplicateSubmission)
		// The cause stays visible for the log, wrapped behind the sentinel.
		assert.Contains(t, err.Error(), "connection reset")
	})
}

// openTestDB returns an in-memory database with the submission schema
// migrated. Each test gets its own named database so state never leaks
// between tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.School{}, &model.Student{}, &model.Submission{}))
	return db
}

// seedSubmissions builds two schools with overlapping class labels so a
// per-field filter alone can never isolate a single row:
//
//	school 1: Asha Rao   class 6  submitted day 1, Stable
//	          Bilal Khan class 7  submitted day 2, SupportNeeded
//	          (class 8 registered, nothing submitted)
//	school 2: Asha Verma class 6  submitted day 3, Emerging
func seedSubmissions(t *testing.T, db *gorm.DB) (day1, day2, day3 time.Time) {
	t.Helper()
	day1 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
	day3 = day1.AddDate(0, 0, 2)

	require.NoError(t, db.Create(&[]model.School{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Green Hills School", Code: "JM-GHS1-2026"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Sunrise Valley School", Code: "JM-SVS1-2026"},
	}).Error)

	require.NoError(t, db.Create(&[]model.Student{
		{BaseModel: model.BaseModel{ID: 1}, SchoolID: 1, Name: "Asha Rao", AccessID: "GHS-2026-AAAA", Class: "6", Section: "A"},
		{BaseModel: model.BaseModel{ID: 2}, SchoolID: 1, Name: "Bilal Khan", AccessID: "GHS-2026-BBBB", Class: "7", Section: "B"},
		{BaseModel: model.BaseModel{ID: 3}, SchoolID: 2, Name: "Asha Verma", AccessID: "SVS-2026-CCCC", Class: "6", Section: "A"},
		{BaseModel: model.BaseModel{ID: 4}, SchoolID: 1, Name: "Chitra Nair", AccessID: "GHS-2026-DDDD", Class: "8", Section: "A"},
	}).Error)

	require.NoError(t, db.Create(&[]model.Submission{
		{StudentID: 1, AssessmentID: 1, SchoolID: 1, TotalScore: 30, AssignedBucket: model.BucketStable, SubmittedAt: day1},
		{StudentID: 2, AssessmentID: 1, SchoolID: 1, TotalScore: 12, AssignedBucket: model.BucketSupportNeeded, SubmittedAt: day2},
		{StudentID: 3, AssessmentID: 1, SchoolID: 2, TotalScore: 20, AssignedBucket: model.BucketEmerging, SubmittedAt: day3},
	}).Error)

	return day1, day2, day3
}

func TestSubmissionFilterConjunction(t *testing.T) {
	db := openTestDB(t)
	seedSubmissions(t, db)
	repo := NewSubmissionRepository(db)

	school1, err := repo.Count(SubmissionFilter{SchoolID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), school1)

	class6, err := repo.Count(SubmissionFilter{Class: "6"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), class6)

	// Combined, the filters intersect: school 1 has one class-6 submission,
	// not the union or either single-filter count.
	both, err := repo.Count(SubmissionFilter{SchoolID: 1, Class: "6"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), both)

	rows, err := repo.Recent(SubmissionFilter{SchoolID: 1, Class: "6"}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "GHS-2026-AAAA", rows[0].AccessID)

	// Adding a bucket that no school-1 class-6 row carries empties the set.
	none, err := repo.Count(SubmissionFilter{SchoolID: 1, Class: "6", Bucket: model.BucketEmerging})
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestSubmissionFilterDateRange(t *testing.T) {
	db := openTestDB(t)
	day1, day2, day3 := seedSubmissions(t, db)
	repo := NewSubmissionRepository(db)

	// Both bounds are inclusive.
	count, err := repo.Count(SubmissionFilter{StartDate: &day1, EndDate: &day2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.Count(SubmissionFilter{StartDate: &day2, EndDate: &day2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.Count(SubmissionFilter{StartDate: &day3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The range composes with the other predicates: school 2 submitted
	// nothing before day 3.
	count, err = repo.Count(SubmissionFilter{SchoolID: 2, StartDate: &day1, EndDate: &day2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSubmissionFilterSearch(t *testing.T) {
	db := openTestDB(t)
	seedSubmissions(t, db)
	repo := NewSubmissionRepository(db)

	// Name matches cross school boundaries until a school filter joins in.
	count, err := repo.Count(SubmissionFilter{Search: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.Count(SubmissionFilter{SchoolID: 1, Search: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Access IDs are searchable too.
	rows, err := repo.Recent(SubmissionFilter{Search: "BBBB"}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bilal Khan", rows[0].StudentName)
}

func TestDistinctClassesReadsRoster(t *testing.T) {
	db := openTestDB(t)
	seedSubmissions(t, db)
	repo := NewSubmissionRepository(db)

	classes, err := repo.DistinctClasses(1)
	require.NoError(t, err)
	// Class 8 has registered students but no submissions yet; the dropdown
	// still offers it.
	assert.Equal(t, []string{"6", "7", "8"}, classes)

	classes, err = repo.DistinctClasses(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"6"}, classes)
}

func TestCreateRejectsSecondSubmission(t *testing.T) {
	db := openTestDB(t)
	seedSubmissions(t, db)
	repo := NewSubmissionRepository(db)

	err := repo.Create(&model.Submission{
		StudentID:      1,
		AssessmentID:   1,
		SchoolID:       1,
		TotalScore:     25,
		AssignedBucket: model.BucketStable,
		SubmittedAt:    time.Now(),
	})
	assert.ErrorIs(t, err, util.ErrDuplicateSubmission)
}
