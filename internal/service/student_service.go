package service

import (
	"errors"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
	SchoolRepo  *repository.SchoolRepository
}

func NewStudentService(studentRepo *repository.StudentRepository, schoolRepo *repository.SchoolRepository) *StudentService {
	return &StudentService{StudentRepo: studentRepo, SchoolRepo: schoolRepo}
}

type StudentRequest struct {
	Name    string `json:"name" binding:"required"`
	Class   string `json:"class"`
	Section string `json:"section"`
}

// Create registers one student with a generated access ID.
func (s *StudentService) Create(schoolID uint, req StudentRequest) (*model.Student, error) {
	school, err := s.SchoolRepo.FindByID(schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}

	ids, err := util.GenerateAccessIDs(school.Name, 1, s.StudentRepo.AccessIDExists)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		SchoolID: school.ID,
		Name:     req.Name,
		AccessID: ids[0],
		Class:    req.Class,
		Section:  req.Section,
	}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

// CreateBatch registers many students at once, e.g. from a roster import.
// Access IDs are generated up front so the whole batch is deduped against
// storage and against itself before any row is written.
func (s *StudentService) CreateBatch(schoolID uint, reqs []StudentRequest) ([]model.Student, error) {
	school, err := s.SchoolRepo.FindByID(schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}

	ids, err := util.GenerateAccessIDs(school.Name, len(reqs), s.StudentRepo.AccessIDExists)
	if err != nil {
		return nil, err
	}

	students := make([]model.Student, len(reqs))
	for i, req := range reqs {
		students[i] = model.Student{
			SchoolID: school.ID,
			Name:     req.Name,
			AccessID: ids[i],
			Class:    req.Class,
			Section:  req.Section,
		}
	}

	if err := s.StudentRepo.CreateBatch(students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentService) Get(id uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) ListBySchool(schoolID uint, class, section string, page, limit int) ([]model.Student, int64, error) {
	return s.StudentRepo.ListBySchool(schoolID, class, section, page, limit)
}

func (s *StudentService) Update(id uint, req StudentRequest) (*model.Student, error) {
	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Class = req.Class
	student.Section = req.Section

	if err := s.StudentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Delete(id uint) error {
	return s.StudentRepo.Delete(id)
}
