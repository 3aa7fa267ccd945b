package repository

import (
	"jaagrmind_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.DB.Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) List(page, limit int) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	if err := r.DB.Model(&model.Assessment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&assessments).Error
	return assessments, total, err
}

func (r *AssessmentRepository) ListPublished() ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("is_published = ?", true).Order("published_at DESC").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.DB.Save(assessment).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

// ListQuestions returns the catalog in its stable question order. Every
// scoring pass aligns answers against exactly this ordering.
func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("`order` ASC").
		Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) CreateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) UpdateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.AssessmentQuestion{}, id).Error
}

// ReplaceQuestions swaps an assessment's question bank in one transaction.
// Order values are rewritten to match slice position, keeping the catalog
// gap-free even when the caller sends sparse orders.
func (r *AssessmentRepository) ReplaceQuestions(assessmentID uint, questions []model.AssessmentQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", assessmentID).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].AssessmentID = assessmentID
			questions[i].Order = i
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
