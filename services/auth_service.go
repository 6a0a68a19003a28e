package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/utils"
)

// CashierStore is the slice of the cashiers collection the services
// need. SetSession returns the document as it was before the write, or
// (nil, nil) for an unknown cashier.
type CashierStore interface {
	FindByUserName(ctx context.Context, userName string) (*entity.Cashier, error)
	SetSession(ctx context.Context, userName string, session *string) (*entity.Cashier, error)
	AppendStatusLog(ctx context.Context, userName string, log entity.StatusUpdateLog) error
}

type AuthService struct {
	Cashiers  CashierStore
	JWTSecret string
	JWTTTL    time.Duration
	Log       *zap.SugaredLogger
}

func NewAuthService(cashiers CashierStore, secret string, ttl time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{Cashiers: cashiers, JWTSecret: secret, JWTTTL: ttl, Log: log}
}

type LoginRes struct {
	Token   string
	Cashier *entity.Cashier
}

func (s *AuthService) Login(ctx context.Context, userName, password string) (*LoginRes, error) {
	userName = strings.TrimSpace(userName)
	cashier, err := s.Cashiers.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, resp.NewError(401, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cashier.Password), []byte(password)); err != nil {
		return nil, resp.NewError(401, "invalid credentials")
	}

	session := uuid.NewString()
	if _, err := s.Cashiers.SetSession(ctx, userName, &session); err != nil {
		return nil, err
	}
	cashier.CurrentSession = &session

	token, err := utils.GenerateToken(cashier.UserName, string(cashier.Role), session, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &LoginRes{Token: token, Cashier: cashier}, nil
}

// Logout clears the caller's own session.
func (s *AuthService) Logout(ctx context.Context, userName string) error {
	before, err := s.Cashiers.SetSession(ctx, userName, nil)
	if err != nil {
		return err
	}
	if before == nil {
		return resp.NewError(404, "cashier not found")
	}
	return nil
}

type ForceLogoutRes struct {
	CashierName     string  `json:"cashierName"`
	UserName        string  `json:"userName"`
	PreviousSession *string `json:"previousSession"`
}

// ForceLogout lets an admin end another cashier's session, reporting
// which session was dropped.
func (s *AuthService) ForceLogout(ctx context.Context, userName string) (*ForceLogoutRes, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, resp.NewError(400, "userName is required")
	}
	before, err := s.Cashiers.SetSession(ctx, userName, nil)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, resp.NewError(404, "cashier not found")
	}
	return &ForceLogoutRes{
		CashierName:     before.Name,
		UserName:        userName,
		PreviousSession: before.CurrentSession,
	}, nil
}
