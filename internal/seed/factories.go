package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"listforge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample user with its profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID: user.ID,
			Bio:    gofakeit.Sentence(12),
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUsers persists n sample users.
func (f *Factory) CreateUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
		log.Printf("Created user: %s", user.Username)
	}
	return users, nil
}

// CreateList constructs and persists a sample list owned by the given user,
// backdated up to 30 days for a realistic created_at spread.
func (f *Factory) CreateList(owner *models.User, overrides ...func(*models.List)) (*models.List, error) {
	prompt := listPrompts[rand.Intn(len(listPrompts))]

	list := &models.List{
		Title:       titleCase(prompt),
		Description: gofakeit.Sentence(15),
		Content:     generateListContent(),
		Tags:        strings.Join(fakeWords(3+rand.Intn(4)), ", "),
		Prompt:      prompt,
		OwnerID:     owner.ID,
		IsPublic:    rand.Intn(3) != 0, // 2/3 chance of being public
		CreatedAt:   time.Now().Add(-time.Duration(rand.Intn(30)) * 24 * time.Hour),
	}

	for _, override := range overrides {
		override(list)
	}

	if err := f.db.Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreateFork persists a copy of source owned by user, with the
// backreference set and a fresh timestamp spread.
func (f *Factory) CreateFork(user *models.User, source *models.List) (*models.List, error) {
	fork := &models.List{
		Title:          source.Title,
		Description:    source.Description,
		Content:        source.Content,
		Tags:           source.Tags,
		Prompt:         source.Prompt,
		OwnerID:        user.ID,
		IsPublic:       rand.Intn(2) == 0,
		OriginalListID: &source.ID,
		CreatedAt:      time.Now().Add(-time.Duration(rand.Intn(15)) * 24 * time.Hour),
	}
	if err := f.db.Create(fork).Error; err != nil {
		return nil, err
	}
	return fork, nil
}

// CreateLike persists a like for the pair, ignoring duplicates. Returns
// whether a new row was written.
func (f *Factory) CreateLike(user *models.User, list *models.List) (bool, error) {
	like := &models.Like{UserID: user.ID, ListID: list.ID}
	res := f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "list_id"}},
		DoNothing: true,
	}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// generateListContent produces 5-10 numbered items, one per line.
func generateListContent() string {
	numItems := 5 + rand.Intn(6)
	items := make([]string, 0, numItems)
	for i := 0; i < numItems; i++ {
		items = append(items, fmt.Sprintf("%d. %s", i+1, gofakeit.Sentence(6)))
	}
	return strings.Join(items, "\n")
}

// titleCase uppercases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func fakeWords(n int) []string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, gofakeit.Word())
	}
	return words
}
