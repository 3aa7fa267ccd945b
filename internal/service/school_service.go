package service

import (
	"errors"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/util"
	"jaagrmind_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SchoolService struct {
	SchoolRepo *repository.SchoolRepository
	UserRepo   *repository.UserRepository
}

func NewSchoolService(schoolRepo *repository.SchoolRepository, userRepo *repository.UserRepository) *SchoolService {
	return &SchoolService{SchoolRepo: schoolRepo, UserRepo: userRepo}
}

type SchoolRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	City         string `json:"city"`
}

// RegisteredSchool carries the generated credentials back to the admin who
// registered the school. The password is returned exactly once; only its
// hash is stored.
type RegisteredSchool struct {
	School   *model.School `json:"school"`
	Password string        `json:"password"`
}

// Register creates a school with a generated login code and initial
// password. Code generation probes storage inside a bounded loop.
func (s *SchoolService) Register(req SchoolRequest) (*RegisteredSchool, error) {
	code, err := util.GenerateSchoolCode(s.SchoolRepo.CodeExists)
	if err != nil {
		return nil, err
	}

	school := &model.School{
		Name:         req.Name,
		Code:         code,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		Active:       true,
	}
	if err := s.SchoolRepo.Create(school); err != nil {
		return nil, err
	}

	password := util.GenerateSchoolPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.User{
		Name:     req.Name,
		Email:    code + "@school.jaagrmind.local",
		Password: string(hashed),
		Role:     model.RoleSchool,
		SchoolID: &school.ID,
	}
	if err := s.UserRepo.Create(account); err != nil {
		return nil, err
	}

	logger.Log.Info("school registered",
		zap.Uint("schoolId", school.ID),
		zap.String("code", school.Code))

	return &RegisteredSchool{School: school, Password: password}, nil
}

func (s *SchoolService) Get(id uint) (*model.School, error) {
	school, err := s.SchoolRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) List(page, limit int) ([]model.School, int64, error) {
	return s.SchoolRepo.List(page, limit)
}

func (s *SchoolService) Update(id uint, req SchoolRequest) (*model.School, error) {
	school, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.ContactName = req.ContactName
	school.ContactEmail = req.ContactEmail
	school.ContactPhone = req.ContactPhone
	school.City = req.City

	if err := s.SchoolRepo.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) SetLogo(id uint, logoURL string) error {
	school, err := s.Get(id)
	if err != nil {
		return err
	}
	school.LogoURL = logoURL
	return s.SchoolRepo.Update(school)
}

// ResetPassword issues a fresh password for the school login.
func (s *SchoolService) ResetPassword(id uint) (string, error) {
	if _, err := s.Get(id); err != nil {
		return "", err
	}

	account, err := s.UserRepo.FindBySchoolID(id)
	if err != nil {
		return "", err
	}

	password := util.GenerateSchoolPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	account.Password = string(hashed)
	if err := s.UserRepo.Update(account); err != nil {
		return "", err
	}
	return password, nil
}

func (s *SchoolService) Delete(id uint) error {
	return s.SchoolRepo.Delete(id)
}
