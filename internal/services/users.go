package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	DeletedUserName = "[Deleted User]"
	avatarSize      = 80
)

var validate = validator.New()

type UserService struct {
	avatars *utils.TTLCache[string]
}

func NewUserService(cacheSize int, cacheTTL time.Duration) (*UserService, error) {
	cache, err := utils.NewTTLCache[string](cacheSize, cacheTTL)
	if err != nil {
		return nil, err
	}
	return &UserService{avatars: cache}, nil
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// bcrypt only hashes the first 72 bytes and refuses anything longer.
func validatePassword(password string) error {
	if len(password) < utils.MinPasswordLength {
		return apperr.InvalidArgument("Password must be at least 6 characters")
	}
	if len(password) > utils.MaxPasswordLength {
		return apperr.InvalidArgument("Password must be at most 72 bytes")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, apperr.InvalidArgument("Name is required")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, apperr.InvalidArgument("Invalid email address")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	conn := db.DB.WithContext(ctx)
	var count int64
	if err := conn.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := conn.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Internal(err)
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return &user, nil
}

// Authenticate checks credentials. Unknown email and wrong password look the same to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := db.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Invalid email or password"}
		}
		return nil, apperr.Internal(err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Invalid email or password"}
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := db.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &user, nil
}

// Rename changes the display name. Ideas and comments resolve names at read time, so nothing else is touched.
func (s *UserService) Rename(ctx context.Context, userID uint, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArgument("Name is required")
	}

	res := db.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("name", name)
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("User")
	}
	return s.Get(ctx, userID)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return apperr.InvalidArgument("Current password is incorrect")
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := db.DB.WithContext(ctx).Model(user).Update("password", hash).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserService) SetAvatar(ctx context.Context, userID uint, dataURL string) error {
	if !strings.HasPrefix(dataURL, utils.AvatarDataPrefix) {
		return apperr.InvalidArgument("Avatar must be an image data URL")
	}
	if !utils.ValidAvatar(dataURL) {
		return apperr.InvalidArgument("Avatar must be a base64 image under 500KB")
	}
	return s.updateAvatar(ctx, userID, dataURL)
}

func (s *UserService) RemoveAvatar(ctx context.Context, userID uint) error {
	return s.updateAvatar(ctx, userID, "")
}

func (s *UserService) updateAvatar(ctx context.Context, userID uint, value string) error {
	res := db.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("avatar_base64", value)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User")
	}
	s.avatars.Delete(avatarKey(userID))
	return nil
}

// AvatarURL returns the uploaded avatar, or a Gravatar identicon for the account email.
func (s *UserService) AvatarURL(ctx context.Context, userID uint) (string, error) {
	key := avatarKey(userID)
	if url, ok := s.avatars.Get(key); ok {
		return url, nil
	}

	var user models.User
	err := db.DB.WithContext(ctx).Select("id", "email", "avatar_base64").First(&user, userID).Error
	if err != nil {
		return "", notFoundOr(err, "User")
	}

	url := user.AvatarBase64
	if url == "" {
		url = utils.GravatarURL(user.Email, avatarSize)
	}
	s.avatars.Set(key, url)
	return url, nil
}

// Delete removes the account after checking the password. Ideas and comments stay and show as a deleted user.
func (s *UserService) Delete(ctx context.Context, userID uint, password string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return apperr.InvalidArgument("Password is incorrect")
	}

	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CreditLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	s.avatars.Delete(avatarKey(userID))
	slog.InfoContext(ctx, "user deleted account", "user_id", userID)
	return nil
}

func avatarKey(userID uint) string {
	return "avatar:" + strconv.FormatUint(uint64(userID), 10)
}

// userNames resolves display names in one query; ids without a user map to DeletedUserName.
func userNames(tx *gorm.DB, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := tx.Select("id", "name").Where("id IN ?", uniqueIDs(ids)).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			names[id] = DeletedUserName
		}
	}
	return names, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
