package service

import (
	"errors"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	SchoolRepo  *repository.SchoolRepository
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, schoolRepo *repository.SchoolRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		SchoolRepo:  schoolRepo,
		StudentRepo: studentRepo,
		Cfg:         cfg,
	}
}

// LoginAdmin authenticates an admin console account.
func (s *AuthService) LoginAdmin(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil || user.Role != model.RoleAdmin || user.Disabled {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(&util.Claims{
		UserID: user.ID,
		Role:   model.RoleAdmin,
	}, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// LoginSchool authenticates a school dashboard account by school code.
func (s *AuthService) LoginSchool(code, password string) (string, *model.School, error) {
	school, err := s.SchoolRepo.FindByCode(code)
	if err != nil || !school.Active {
		return "", nil, util.ErrInvalidCredentials
	}

	user, err := s.UserRepo.FindBySchoolID(school.ID)
	if err != nil || user.Disabled {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	token, err := util.GenerateJWT(&util.Claims{
		UserID:   user.ID,
		Role:     model.RoleSchool,
		SchoolID: school.ID,
	}, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, school, err
}

// LoginStudent authenticates a student by access ID. Students have no
// password; the access ID is the credential, generated unique upstream.
func (s *AuthService) LoginStudent(accessID string) (string, *model.Student, error) {
	student, err := s.StudentRepo.FindByAccessID(accessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := util.GenerateJWT(&util.Claims{
		SubjectID: student.ID,
		Role:      model.RoleAccess,
		SchoolID:  student.SchoolID,
	}, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, student, err
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}
