package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/metrics"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	hasher         ports.PasswordHasher
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		events:         events,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

func (us *UserService) FindUsers(ctx context.Context) (user.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	return user.ToResponseUsers(users), nil
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*user.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", uuid, err)
	}
	if u == nil {
		return nil, ErrUserNotFound(uuid)
	}

	resp := user.ToResponseUser(*u)
	return &resp, nil
}

func (us *UserService) RegisterUser(ctx context.Context, req user.Request) (*user.User, error) {
	rawPassword, err := decodePassword(req.Password)
	if err != nil {
		us.inc(metrics.UserRegisterRejectedTotal)
		return nil, ErrPasswordNotBase64
	}

	hash, err := us.hasher.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordTooLong) {
			us.inc(metrics.UserRegisterRejectedTotal)
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := us.userRepository.CreateUser(ctx, domain.NewUser(req.FullName, req.Email, hash, us.now()))
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			us.inc(metrics.UserRegisterRejectedTotal)
			return nil, ErrUnableToCreateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := user.ToResponseUser(*created)
	if !us.events.Publish(mq.NewUserRegistered(created.UUID, resp, us.now())) {
		us.inc(metrics.EventsDroppedTotal)
	}
	us.inc(metrics.UserRegisteredTotal)

	return &resp, nil
}

func (us *UserService) inc(result string) {
	if us.mCounter != nil {
		us.mCounter.WithLabelValues(result).Inc()
	}
}

// decodePassword accepts standard Base64 with or without padding. The decoded
// bytes must be valid UTF-8. Line breaks are not part of the alphabet and are
// rejected, the stdlib decoder would otherwise skip them.
func decodePassword(encoded string) (string, error) {
	if strings.ContainsAny(encoded, "\r\n") {
		return "", errors.New("password contains line breaks")
	}

	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return "", err
		}
	}
	if !utf8.Valid(b) {
		return "", errors.New("decoded password is not valid UTF-8")
	}

	return string(b), nil
}
