package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type stubSuggester struct {
	available  bool
	suggestion *adapter.CategorySuggestion
	err        error
	lastReq    adapter.CategorySuggestionRequest
}

func (s *stubSuggester) Suggest(_ context.Context, req adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	s.lastReq = req
	return s.suggestion, s.err
}

func (s *stubSuggester) IsAvailable() bool { return s.available }

func TestListSuggestedCategoriesUseCase(t *testing.T) {
	uc := NewListSuggestedCategoriesUseCase()
	income := entity.TransactionTypeIncome

	all, err := uc.Execute(context.Background(), ListSuggestedCategoriesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Sets) != 2 || len(all.Palette) != 10 {
		t.Errorf("expected both sets and 10 colors, got %d sets and %d colors", len(all.Sets), len(all.Palette))
	}

	one, err := uc.Execute(context.Background(), ListSuggestedCategoriesInput{Type: &income})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(one.Sets) != 1 || one.Sets[0].Categories[0] != "Salary" {
		t.Errorf("unexpected income set: %+v", one.Sets)
	}

	bad := entity.TransactionType("transfer")
	_, err = uc.Execute(context.Background(), ListSuggestedCategoriesInput{Type: &bad})
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeInvalidCategoryType {
		t.Errorf("expected invalid type error, got %v", err)
	}
}

func TestSuggestCategoryUseCase(t *testing.T) {
	base := SuggestCategoryInput{
		UserID: uuid.New(),
		Type:   entity.TransactionTypeExpense,
		Notes:  "Uber to the airport",
		Amount: decimal.NewFromInt(35),
	}

	tests := []struct {
		name      string
		suggester *stubSuggester
		category  string
		source    string
	}{
		{"ai unavailable", &stubSuggester{}, "Other", SourceDefault},
		{"ai answer in set", &stubSuggester{available: true, suggestion: &adapter.CategorySuggestion{Category: "Transport", Confidence: 0.9}}, "Transport", SourceAI},
		{"ai answer outside set", &stubSuggester{available: true, suggestion: &adapter.CategorySuggestion{Category: "Travel"}}, "Other", SourceDefault},
		{"ai error", &stubSuggester{available: true, err: errors.New("quota exceeded")}, "Other", SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := NewSuggestCategoryUseCase(tt.suggester).Execute(context.Background(), base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Category != tt.category || output.Source != tt.source {
				t.Errorf("expected %s/%s, got %s/%s", tt.category, tt.source, output.Category, output.Source)
			}
		})
	}
}

func TestSuggestCategoryUseCase_PassesCandidates(t *testing.T) {
	suggester := &stubSuggester{available: true, suggestion: &adapter.CategorySuggestion{Category: "Gift"}}

	_, err := NewSuggestCategoryUseCase(suggester).Execute(context.Background(), SuggestCategoryInput{
		Type:  entity.TransactionTypeIncome,
		Notes: "birthday money",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggester.lastReq.Candidates) != 5 {
		t.Errorf("expected income candidates, got %v", suggester.lastReq.Candidates)
	}
}

func TestSuggestCategoryUseCase_Validation(t *testing.T) {
	uc := NewSuggestCategoryUseCase(nil)

	_, err := uc.Execute(context.Background(), SuggestCategoryInput{Type: "transfer", Notes: "x"})
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeInvalidCategoryType {
		t.Errorf("expected invalid type error, got %v", err)
	}

	_, err = uc.Execute(context.Background(), SuggestCategoryInput{Type: entity.TransactionTypeExpense, Notes: "  "})
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeMissingCategoryFields {
		t.Errorf("expected missing fields error, got %v", err)
	}
}
