package user

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	AccessTokenTTL  = time.Minute * 15
	RefreshTokenTTL = time.Hour * 24 * 30
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidPublicKey = errors.New("public key must be a base64 X25519 key")
)

type LoginResult struct {
	User         *UserResponse
	AccessToken  string
	RefreshToken string
}

type UserService interface {
	GoogleLogin(ctx context.Context, dto GoogleLoginDTO) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	RegisterPublicKey(ctx context.Context, id uuid.UUID, dto RegisterPublicKeyDTO) (*UserResponse, error)
}

type service struct {
	repo        UserRepository
	oauthConfig *oauth2.Config
}

func NewService(repo UserRepository) UserService {
	return &service{
		repo: repo,
		oauthConfig: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

func (s *service) GoogleLogin(ctx context.Context, dto GoogleLoginDTO) (*LoginResult, error) {
	log := config.WithContext(ctx)

	cfg := *s.oauthConfig
	if dto.RedirectURI != "" {
		cfg.RedirectURL = dto.RedirectURI
	}

	token, err := cfg.Exchange(ctx, dto.Code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, ErrUnauthorized
	}

	info, err := fetchGoogleUserInfo(ctx, &cfg, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByGoogleID(info.Sub)
	if errors.Is(err, ErrUserNotFound) {
		u = &User{
			ID:        uuid.New(),
			Name:      info.Name,
			Email:     info.Email,
			GoogleID:  info.Sub,
			AvatarURL: info.Picture,
			Role:      "user",
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user")
			return nil, err
		}
		log.WithField("user_id", u.ID).Info("User registered")
	} else if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Invalid refresh token")
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, ErrUnauthorized
	}

	// The presented token must match the one stored (encrypted) for the
	// user, so a rotated-out token cannot be replayed.
	stored, err := config.Decrypt(u.RefreshToken)
	if err != nil || stored != refreshToken {
		log.WithField("user_id", u.ID).Warn("Refresh token mismatch")
		return nil, ErrUnauthorized
	}

	return s.issueTokens(ctx, u)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *service) RegisterPublicKey(ctx context.Context, id uuid.UUID, dto RegisterPublicKeyDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	raw, err := base64.StdEncoding.DecodeString(dto.PublicKey)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidPublicKey
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	u.PublicKey = dto.PublicKey
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to register public key")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Encryption public key registered")
	return toResponse(u), nil
}

func (s *service) issueTokens(ctx context.Context, u *User) (*LoginResult, error) {
	log := config.WithContext(ctx)

	access, err := auth.GenerateJWT(u.ID.String(), u.Role, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), u.Role, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	encrypted, err := config.Encrypt(refresh)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = encrypted
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to persist refresh token")
		return nil, err
	}

	return &LoginResult{
		User:         toResponse(u),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get("https://openidconnect.googleapis.com/v1/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("userinfo endpoint returned " + resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		Role:            u.Role,
		EncryptionReady: u.EncryptionReady(),
		CreatedAt:       u.CreatedAt,
	}
}
