package models

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"Litreview/api/markup"
	"Litreview/api/security"

	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	MaxUsernameLength = 150
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username" validate:"required,max=150,username"`
	Password  string    `gorm:"size:255;not null" json:"password" validate:"required"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) Prepare() {
	u.Username = markup.StripTags(strings.ToLower(strings.TrimSpace(u.Username)))
}

// Validate checks a login attempt ("login") or a new account (any other
// action). Password rules only apply to new accounts.
func (u *User) Validate(action string) map[string]string {
	switch strings.ToLower(action) {
	case "login":
		errorMessages := make(map[string]string)
		if u.Username == "" {
			errorMessages["username"] = "Ce champ est obligatoire."
		}
		if u.Password == "" {
			errorMessages["password"] = "Ce champ est obligatoire."
		}
		return errorMessages
	default:
		errorMessages := validateStruct(u)
		if _, bad := errorMessages["password"]; !bad {
			if msg := passwordProblem(u.Password, u.Username); msg != "" {
				errorMessages["password"] = msg
			}
		}
		return errorMessages
	}
}

func passwordProblem(password, username string) string {
	if len([]rune(password)) < minPasswordLength {
		return "Ce mot de passe est trop court. Il doit contenir au minimum 8 caractères."
	}
	if strings.EqualFold(password, username) {
		return "Le mot de passe est trop semblable au nom d'utilisateur."
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "Ce mot de passe est entièrement numérique."
	}
	return ""
}

// SaveUser hashes the plaintext password and inserts the user.
func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := u.HashPassword(); err != nil {
		return nil, err
	}
	if err := db.Create(u).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	if err := db.Where("id = ?", uid).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (u *User) FindUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	name := strings.ToLower(strings.TrimSpace(username))
	if err := db.Where("username = ?", name).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// SignIn looks the user up by username and checks the password. Every
// credential failure collapses into ErrInvalidCredentials.
func SignIn(db *gorm.DB, username, password string) (*User, error) {
	user, err := (&User{}).FindUserByUsername(db, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := security.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
