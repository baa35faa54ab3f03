// Package seed populates a database with demo content, either generated or
// loaded from a YAML preset.
package seed

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const dateLayout = "January 02, 2006"

// titleSeq disambiguates generated titles, which must be unique.
var titleSeq atomic.Uint64

// Factory generates realistic demo records.
type Factory struct {
	passwordHash string
}

// NewFactory returns a Factory. Every generated user shares the given
// plaintext password so demo logins are predictable.
func NewFactory(password string) (*Factory, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Factory{passwordHash: string(hashed)}, nil
}

func (f *Factory) User() *models.User {
	return &models.User{
		Username: gofakeit.Username(),
		Email:    gofakeit.Email(),
		Password: f.passwordHash,
	}
}

func (f *Factory) Post(userID uint) *models.Post {
	n := titleSeq.Add(1)
	return &models.Post{
		UserID:   userID,
		Title:    fmt.Sprintf("%s #%d", gofakeit.BookTitle(), n),
		Subtitle: gofakeit.Sentence(6),
		Date:     gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format(dateLayout),
		Body:     gofakeit.Paragraph(4, 5, 12, "\n\n"),
		ImageURL: gofakeit.ImageURL(1200, 600),
	}
}

// Generate inserts `users` accounts each authoring `postsPerUser` posts.
func (f *Factory) Generate(ctx context.Context, db *gorm.DB, users, postsPerUser int) error {
	for i := 0; i < users; i++ {
		user := f.User()
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		for j := 0; j < postsPerUser; j++ {
			if err := db.WithContext(ctx).Create(f.Post(user.ID)).Error; err != nil {
				return fmt.Errorf("seeding post: %w", err)
			}
		}
	}
	return nil
}

// Preset is a hand-written seed fixture.
type Preset struct {
	Users []PresetUser `yaml:"users"`
	Posts []PresetPost `yaml:"posts"`
}

type PresetUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin"`
}

type PresetPost struct {
	Author   string `yaml:"author"` // email of an entry in Users
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Body     string `yaml:"body"`
	ImageURL string `yaml:"img_url"`
	Date     string `yaml:"date"`
}

// LoadPreset reads a YAML preset from disk.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing preset %s: %w", path, err)
	}
	return &p, nil
}

// Apply inserts the preset's users and posts. Post authors are resolved by
// email against the preset's own users.
func (p *Preset) Apply(ctx context.Context, db *gorm.DB) error {
	byEmail := make(map[string]uint, len(p.Users))

	for _, pu := range p.Users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pu.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Username: pu.Username,
			Email:    pu.Email,
			Password: string(hashed),
			IsAdmin:  pu.Admin,
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("preset user %s: %w", pu.Email, err)
		}
		byEmail[pu.Email] = user.ID
	}

	for _, pp := range p.Posts {
		authorID, ok := byEmail[pp.Author]
		if !ok {
			return fmt.Errorf("preset post %q: author %s not in preset users", pp.Title, pp.Author)
		}
		date := pp.Date
		if date == "" {
			date = time.Now().Format(dateLayout)
		}
		post := &models.Post{
			UserID:   authorID,
			Title:    pp.Title,
			Subtitle: pp.Subtitle,
			Body:     pp.Body,
			ImageURL: pp.ImageURL,
			Date:     date,
		}
		if err := db.WithContext(ctx).Create(post).Error; err != nil {
			return fmt.Errorf("preset post %q: %w", pp.Title, err)
		}
	}
	return nil
}
