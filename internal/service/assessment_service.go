package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo *repository.AssessmentRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{Repo: repo}
}

type QuestionRequest struct {
	Section model.Section          `json:"section" binding:"required"`
	Text    string                 `json:"text" binding:"required"`
	Options []model.QuestionOption `json:"options" binding:"required"`
}

type AssessmentRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	TimeLimit   int               `json:"timeLimit"`
	Questions   []QuestionRequest `json:"questions"`
}

func validateQuestion(i int, q QuestionRequest) error {
	if !q.Section.Valid() {
		return fmt.Errorf("question %d: unknown section %q", i, q.Section)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: needs at least two options", i)
	}
	for j, opt := range q.Options {
		if opt.Marks < 0 {
			return fmt.Errorf("question %d option %d: negative mark weight", i, j)
		}
	}
	return nil
}

func buildQuestions(reqs []QuestionRequest) ([]model.AssessmentQuestion, error) {
	questions := make([]model.AssessmentQuestion, len(reqs))
	for i, req := range reqs {
		if err := validateQuestion(i, req); err != nil {
			return nil, err
		}
		opts, err := json.Marshal(req.Options)
		if err != nil {
			return nil, err
		}
		questions[i] = model.AssessmentQuestion{
			Order:   i,
			Section: req.Section,
			Text:    req.Text,
			Options: opts,
		}
	}
	return questions, nil
}

func (s *AssessmentService) Create(req AssessmentRequest) (*model.Assessment, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
	}
	if err := s.Repo.Create(assessment); err != nil {
		return nil, err
	}

	if len(questions) > 0 {
		if err := s.Repo.ReplaceQuestions(assessment.ID, questions); err != nil {
			return nil, err
		}
	}
	return assessment, nil
}

func (s *AssessmentService) Get(id uint) (*model.Assessment, []model.AssessmentQuestion, error) {
	assessment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrAssessmentNotFound
		}
		return nil, nil, err
	}
	questions, err := s.Repo.ListQuestions(id)
	if err != nil {
		return nil, nil, err
	}
	return assessment, questions, nil
}

func (s *AssessmentService) List(page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *AssessmentService) ListPublished() ([]model.Assessment, error) {
	return s.Repo.ListPublished()
}

// Update replaces metadata and, when questions are supplied, the question
// bank. Published assessments keep their catalog frozen: submissions
// already reference its indices and weights.
func (s *AssessmentService) Update(id uint, req AssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	assessment.Title = req.Title
	assessment.Description = req.Description
	assessment.TimeLimit = req.TimeLimit
	if err := s.Repo.Update(assessment); err != nil {
		return nil, err
	}

	if len(req.Questions) > 0 {
		if assessment.IsPublished {
			return nil, errors.New("cannot change questions of a published assessment")
		}
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.ReplaceQuestions(assessment.ID, questions); err != nil {
			return nil, err
		}
	}
	return assessment, nil
}

func (s *AssessmentService) SetPublished(id uint, published bool) (*model.Assessment, error) {
	assessment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	if published && !assessment.IsPublished {
		questions, err := s.Repo.ListQuestions(id)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, util.ErrAssessmentEmpty
		}
		now := time.Now()
		assessment.PublishedAt = &now
	}
	assessment.IsPublished = published

	if err := s.Repo.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// StudentQuestion is the catalog entry served to a student taking the
// assessment: option texts without their mark weights. Weights stay
// server-side so nothing scoreable ever reaches the client.
type StudentQuestion struct {
	Index   int           `json:"index"`
	Section model.Section `json:"section"`
	Text    string        `json:"text"`
	Options []string      `json:"options"`
}

type StudentAssessmentView struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TimeLimit   int               `json:"timeLimit"`
	Questions   []StudentQuestion `json:"questions"`
}

// GetForStudent returns a published assessment stripped for delivery.
func (s *AssessmentService) GetForStudent(id uint) (*StudentAssessmentView, error) {
	assessment, questions, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !assessment.IsPublished {
		return nil, util.ErrAssessmentNotPublished
	}

	view := &StudentAssessmentView{
		ID:          assessment.ID,
		Title:       assessment.Title,
		Description: assessment.Description,
		TimeLimit:   assessment.TimeLimit,
		Questions:   make([]StudentQuestion, 0, len(questions)),
	}

	for i, q := range questions {
		opts, err := q.ParseOptions()
		if err != nil {
			return nil, err
		}
		texts := make([]string, len(opts))
		for j, opt := range opts {
			texts[j] = opt.Text
		}
		view.Questions = append(view.Questions, StudentQuestion{
			Index:   i,
			Section: q.Section,
			Text:    q.Text,
			Options: texts,
		})
	}

	return view, nil
}
