package repository

import (
	"errors"

	"jaagrmind_backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(school *model.School) error {
	return r.DB.Create(school).Error
}

func (r *SchoolRepository) FindByID(id uint) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, id).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepository) FindByCode(code string) (*model.School, error) {
	var school model.School
	err := r.DB.Where("code = ?", code).First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.School{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchoolRepository) List(page, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	if err := r.DB.Model(&model.School{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&schools).Error
	return schools, total, err
}

func (r *SchoolRepository) Update(school *model.School) error {
	return r.DB.Save(school).Error
}

// Delete removes a school and cascades to its students and their
// submissions. Submission rows only ever disappear through this cascade
// or the student one; nothing updates them in place.
func (r *SchoolRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var studentIDs []uint
		if err := tx.Model(&model.Student{}).Where("school_id = ?", id).Pluck("id", &studentIDs).Error; err != nil {
			return err
		}
		if len(studentIDs) > 0 {
			if err := tx.Where("student_id IN ?", studentIDs).Delete(&model.Submission{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("school_id = ?", id).Delete(&model.Student{}).Error; err != nil {
			return err
		}
		if err := tx.Where("school_id = ?", id).Delete(&model.User{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.School{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("school not found")
		}
		return nil
	})
}
