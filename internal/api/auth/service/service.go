package authService

import (
	"ProjectBudget/internal/api/auth"
	authRepository "ProjectBudget/internal/api/auth/repository"
	"ProjectBudget/pkg/bcrypt"
	"ProjectBudget/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (string, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
	tokenTTL       time.Duration
	now            func() time.Time
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	tokenTTL time.Duration,
) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	return &authService{
		log:            log,
		authRepository: authRepo,
		bcryptUtils:    bcryptUtils,
		utils:          utils,
		tokenTTL:       tokenTTL,
		now:            time.Now,
	}
}
