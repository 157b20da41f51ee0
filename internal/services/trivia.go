package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trivia-coffee-backend/internal/apperr"
	"trivia-coffee-backend/internal/listing"
	"trivia-coffee-backend/internal/models"

	"gorm.io/gorm"
)

type TriviaService struct {
	db   *gorm.DB
	intn func(int) int
}

func NewTriviaService(db *gorm.DB) *TriviaService {
	return &TriviaService{db: db}
}

type QuestionPage struct {
	Questions       []models.Question
	Total           int
	Categories      []string
	CurrentCategory *string
}

type CategoryPage struct {
	Questions       []models.Question
	Total           int
	CurrentCategory string
}

type QuestionInput struct {
	Question   string
	Answer     string
	Difficulty int
	// Category is the 0-indexed API category.
	Category int
}

// QuizCategory selects the pool for a quiz draw. Any is set when the client
// asked for every category; otherwise ID is the 0-indexed API category.
type QuizCategory struct {
	Any bool
	ID  int
}

func (s *TriviaService) categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return cats, nil
}

func labels(cats []models.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Type)
	}
	return out
}

// CategoryLabels returns every category label in id order. No categories
// at all is a not-found condition.
func (s *TriviaService) CategoryLabels(ctx context.Context) ([]string, error) {
	cats, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, apperr.NotFound(errors.New("no categories"))
	}
	return labels(cats), nil
}

// DefaultCategory is the label reported as the current category on
// unfiltered listings: the first category by id, or nil when none exist.
func (s *TriviaService) DefaultCategory(ctx context.Context) (*string, error) {
	cats, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	return firstLabel(cats), nil
}

func firstLabel(cats []models.Category) *string {
	if len(cats) == 0 {
		return nil
	}
	label := cats[0].Type
	return &label
}

func (s *TriviaService) allQuestions(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Question, error) {
	var questions []models.Question
	q := s.db.WithContext(ctx).Model(&models.Question{})
	if scope != nil {
		q = q.Scopes(scope)
	}
	if err := q.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

func inCategory(stored uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", stored)
	}
}

func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	cats, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.allQuestions(ctx, nil)
	if err != nil {
		return nil, err
	}
	window, err := listing.Paginate(questions, page)
	if err != nil {
		return nil, apperr.NotFound(fmt.Errorf("questions page %d: %w", page, err))
	}

	return &QuestionPage{
		Questions:       window,
		Total:           len(questions),
		Categories:      labels(cats),
		CurrentCategory: firstLabel(cats),
	}, nil
}

func (s *TriviaService) QuestionsByCategory(ctx context.Context, apiCategory, page int) (*CategoryPage, error) {
	stored := models.StoredCategoryID(apiCategory)
	questions, err := s.allQuestions(ctx, inCategory(stored))
	if err != nil {
		return nil, err
	}

	var cat models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", stored).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unprocessable(fmt.Errorf("category %d does not exist", apiCategory))
		}
		return nil, fmt.Errorf("load category %d: %w", apiCategory, err)
	}

	window, err := listing.Paginate(questions, page)
	if err != nil {
		return nil, apperr.NotFound(fmt.Errorf("category %d page %d: %w", apiCategory, page, err))
	}
	return &CategoryPage{Questions: window, Total: len(questions), CurrentCategory: cat.Type}, nil
}

func (s *TriviaService) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	questions, err := s.allQuestions(ctx, nil)
	if err != nil {
		return nil, err
	}
	return listing.Search(questions, func(q models.Question) string { return q.Question }, term), nil
}

func (s *TriviaService) CreateQuestion(ctx context.Context, in QuestionInput) (*models.Question, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
		return nil, apperr.Unprocessable(errors.New("question and answer are required"))
	}
	stored := models.StoredCategoryID(in.Category)

	var question models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.Where("id = ?", stored).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Unprocessable(fmt.Errorf("category %d does not exist", in.Category))
			}
			return err
		}
		question = models.Question{
			Question:   in.Question,
			Answer:     in.Answer,
			Difficulty: in.Difficulty,
			Category:   stored,
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &question, nil
}

func (s *TriviaService) DeleteQuestion(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Question{})
	if result.Error != nil {
		return fmt.Errorf("delete question %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(fmt.Errorf("question %d", id))
	}
	return nil
}

// NextQuizQuestion draws a question the player has not seen yet. ok is
// false once the pool is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, previous []uint, category QuizCategory) (*models.Question, bool, error) {
	var scope func(*gorm.DB) *gorm.DB
	if !category.Any {
		scope = inCategory(models.StoredCategoryID(category.ID))
	}
	candidates, err := s.allQuestions(ctx, scope)
	if err != nil {
		return nil, false, err
	}

	picked, ok := listing.Draw(candidates, listing.IDSet(previous), func(q models.Question) uint { return q.ID }, s.intn)
	if !ok {
		return nil, false, nil
	}
	return &picked, true, nil
}
