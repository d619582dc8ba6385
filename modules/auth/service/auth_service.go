package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bandos-api/core/cache"
	"bandos-api/core/config"
	"bandos-api/core/constants"
	"bandos-api/core/errors"
	"bandos-api/core/logger"
	"bandos-api/core/storage"
	"bandos-api/core/utils"
	"bandos-api/modules/auth/dto"
	"bandos-api/modules/auth/entity"
	"bandos-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateTTL = 10 * time.Minute

type AuthService struct {
	repo     repository.AuthRepositoryInterface
	cache    cache.Cache
	uploader storage.Uploader
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache, uploader storage.Uploader) *AuthService {
	return &AuthService{
		repo:     repo,
		cache:    c,
		uploader: uploader,
	}
}

// Register creates a local-password account.
func (service *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Password:    &hashed,
		Provider:    entity.ProviderLocal,
	}
	if err := service.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
	}

	logger.Info("AuthService:Register:Created", "user_id", user.ID, "email", user.Email)
	return service.buildAuthResponse(user)
}

// Login authenticates a local-password account. Attempts are throttled per
// email via the cache.
func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	blocked, err := service.cache.IsLoginBlocked(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error:", err)
	} else if blocked {
		return nil, errors.NewAppError(errors.ErrLoginBlocked, "too many failed login attempts, try again later", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil || user.Password == nil || !utils.ComparePassword(*user.Password, req.Password) {
		if _, err := service.cache.IncrementLoginAttempt(ctx, email); err != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if err := service.cache.ResetLoginAttempts(ctx, email); err != nil {
		logger.Error("AuthService:Login:ResetLoginAttempts:Error:", err)
	}

	logger.Info("AuthService:Login:Success", "user_id", user.ID)
	return service.buildAuthResponse(user)
}

// Logout blacklists the presented access token for its remaining lifetime.
func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := service.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new access token.
func (service *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, *errors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		logger.Error("AuthService:Refresh:IsTokenBlacklisted:Error:", err)
	} else if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token has been revoked", nil)
	}

	claims, err := utils.ValidateAndParseToken(refreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid refresh token", err)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "not a refresh token", nil)
	}

	cfg := config.Get()
	accessTTL := time.Duration(cfg.JWT.AccessTTLHours) * time.Hour
	access, err := utils.GenerateToken(claims.UserID, claims.Email, claims.DisplayName, constants.ScopeTokenAccess, accessTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate token", err)
	}

	return &dto.TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTTL.Seconds()),
	}, nil
}

// GoogleAuthURL starts the OAuth code flow and returns the consent URL.
func (service *AuthService) GoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	oauthCfg, appErr := service.googleOAuthConfig()
	if appErr != nil {
		return "", appErr
	}

	state := utils.GenerateRandomString(24)
	if err := service.repo.SaveOAuthState(ctx, state, time.Now().Add(oauthStateTTL)); err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to save oauth state", err)
	}

	return oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback finishes the OAuth code flow. The user profile is created
// on first sign-in and reused afterwards.
func (service *AuthService) GoogleCallback(ctx context.Context, state string, code string) (*dto.AuthResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	ok, err := service.repo.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify oauth state", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired oauth state", nil)
	}

	oauthCfg, appErr := service.googleOAuthConfig()
	if appErr != nil {
		return nil, appErr
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	info, err := service.fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:UserInfo:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch user info", err)
	}

	user, err := service.repo.GetUserByEmail(ctx, strings.ToLower(info.Email))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		user = &entity.User{
			Email:       strings.ToLower(info.Email),
			DisplayName: info.Name,
			Provider:    entity.ProviderGoogle,
		}
		if info.Picture != "" {
			user.PhotoURL = &info.Picture
		}
		if err := service.repo.CreateUser(ctx, user); err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
		}
		logger.Info("AuthService:GoogleCallback:NewUser", "user_id", user.ID, "email", user.Email)
	}

	return service.buildAuthResponse(user)
}

// Me returns the current user's profile.
func (service *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the owner-editable parts of the profile.
func (service *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "display name cannot be empty", nil)
	}

	if err := service.repo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to update display name", err)
	}
	return nil
}

// UpdateAvatar uploads a new avatar image and stores its public URL.
func (service *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (*dto.AvatarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	if service.uploader == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "avatar storage not configured", nil)
	}
	if len(data) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "avatar file is empty", nil)
	}

	key := fmt.Sprintf("avatars/%s-%s", userID, utils.GenerateID())
	url, err := service.uploader.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload avatar", err)
	}

	if err := service.repo.UpdatePhotoURL(ctx, userID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update photo url", err)
	}

	return &dto.AvatarResponse{PhotoURL: url}, nil
}

func (service *AuthService) googleOAuthConfig() (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not loaded", nil)
	}
	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" || cfg.Google.RedirectURI == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "google oauth not configured", nil)
	}

	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}, nil
}

func (service *AuthService) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}
	return &info, nil
}

func (service *AuthService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	cfg := config.Get()
	accessTTL := time.Duration(cfg.JWT.AccessTTLHours) * time.Hour
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour

	access, err := utils.GenerateToken(user.ID, user.Email, user.DisplayName, constants.ScopeTokenAccess, accessTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	refresh, err := utils.GenerateToken(user.ID, user.Email, user.DisplayName, constants.ScopeTokenRefresh, refreshTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	return &dto.AuthResponse{
		User: toUserResponse(user),
		Tokens: dto.TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			ExpiresIn:    int64(accessTTL.Seconds()),
		},
	}, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PhotoURL:    user.PhotoURL,
		Provider:    user.Provider,
		CreatedAt:   user.CreatedAt,
	}
}
