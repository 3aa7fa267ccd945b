package service

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/util"
	"jaagrmind_backend/pkg/logger"
	"jaagrmind_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionService runs the submit pipeline: validate against the catalog,
// rescore server-side, classify, persist. One pass, no branching back; the
// first failing stage stops the request and nothing is written.
type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssessmentRepo *repository.AssessmentRepository
	StudentRepo    *repository.StudentRepository

	mu         sync.RWMutex
	classifier *Classifier
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	assessmentRepo *repository.AssessmentRepository,
	studentRepo *repository.StudentRepository,
	classifier *Classifier,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AssessmentRepo: assessmentRepo,
		StudentRepo:    studentRepo,
		classifier:     classifier,
	}
}

// SetClassifier swaps the threshold table, used by the config reloader.
// In-flight submissions keep the classifier they started with.
func (s *SubmissionService) SetClassifier(c *Classifier) {
	s.mu.Lock()
	s.classifier = c
	s.mu.Unlock()
}

func (s *SubmissionService) currentClassifier() *Classifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier
}

// SubmitRequest is the ingestion payload. Nothing here is trusted for
// scoring: marks are recomputed from the catalog regardless of anything the
// client computed or echoed.
type SubmitRequest struct {
	AssessmentID   uint        `json:"assessmentId" binding:"required"`
	Answers        []RawAnswer `json:"answers" binding:"required"`
	TotalTimeTaken int         `json:"totalTimeTaken"`
	MobileNumber   string      `json:"mobileNumber"`
	Email          string      `json:"email"`
}

func (s *SubmissionService) Submit(studentID uint, req SubmitRequest) (*model.Submission, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	assessment, err := s.AssessmentRepo.FindByID(req.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if !assessment.IsPublished {
		return nil, util.ErrAssessmentNotPublished
	}

	questions, err := s.AssessmentRepo.ListQuestions(assessment.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrAssessmentEmpty
	}

	validated, err := ValidateAnswers(questions, req.Answers)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("validation_rejected").Inc()
		return nil, err
	}

	report := ScoreAnswers(questions, validated)
	classification := s.currentClassifier().Classify(report)

	answersJSON, err := json.Marshal(report.Answers)
	if err != nil {
		return nil, err
	}

	totalTime := req.TotalTimeTaken
	if totalTime < 0 {
		totalTime = 0
	}

	submission := &model.Submission{
		StudentID:    student.ID,
		SchoolID:     student.SchoolID,
		AssessmentID: assessment.ID,

		TotalScore:    report.TotalScore,
		SectionScoreA: report.SectionScores[model.SectionA],
		SectionScoreB: report.SectionScores[model.SectionB],
		SectionScoreC: report.SectionScores[model.SectionC],
		SectionScoreD: report.SectionScores[model.SectionD],

		SectionBucketA: classification.SectionBuckets[model.SectionA],
		SectionBucketB: classification.SectionBuckets[model.SectionB],
		SectionBucketC: classification.SectionBuckets[model.SectionC],
		SectionBucketD: classification.SectionBuckets[model.SectionD],

		PrimarySkillArea:   string(classification.PrimarySkillArea),
		SecondarySkillArea: string(classification.SecondarySkillArea),
		AssignedBucket:     classification.AssignedBucket,

		Answers:      answersJSON,
		TimeTaken:    totalTime,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		SubmittedAt:  time.Now(),
	}

	if err := s.SubmissionRepo.Create(submission); err != nil {
		if errors.Is(err, util.ErrDuplicateSubmission) {
			monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		monitoring.SubmissionCounter.WithLabelValues("storage_error").Inc()
		logger.Log.Error("submission write failed",
			zap.Uint("studentId", student.ID),
			zap.Uint("assessmentId", assessment.ID),
			zap.Error(err))
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("persisted").Inc()
	logger.Log.Info("submission persisted",
		zap.Uint("studentId", student.ID),
		zap.Uint("assessmentId", assessment.ID),
		zap.Int("totalScore", report.TotalScore),
		zap.String("assignedBucket", string(classification.AssignedBucket)))

	return submission, nil
}

// GetForStudent returns a student's submission for one assessment.
func (s *SubmissionService) GetForStudent(studentID, assessmentID uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByStudentAndAssessment(studentID, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

// ListForStudent returns all of a student's submissions, newest first.
func (s *SubmissionService) ListForStudent(studentID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.ListByStudent(studentID)
}

func (s *SubmissionService) GetByID(id uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}
