package repository

import (
	"jaagrmind_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) CreateBatch(students []model.Student) error {
	return r.DB.Create(&students).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("School").First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByAccessID(accessID string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("School").Where("access_id = ?", accessID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) AccessIDExists(accessID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Student{}).Where("access_id = ?", accessID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *StudentRepository) ListBySchool(schoolID uint, class, section string, page, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	q := r.DB.Model(&model.Student{}).Where("school_id = ?", schoolID)
	if class != "" {
		q = q.Where("class = ?", class)
	}
	if section != "" {
		q = q.Where("section = ?", section)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("class, section, name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&students).Error
	return students, total, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

// Delete removes a student together with their submissions.
func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
}
