package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"trivia-coffee-backend/internal/apperr"

	"github.com/gin-gonic/gin/binding"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	var req CreateQuestionRequest
	if err := json.Unmarshal([]byte(`{"difficulty":"4","category":2}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Difficulty == nil || *req.Difficulty != 4 || req.Category == nil || *req.Category != 2 {
		t.Fatalf("unexpected decode: %+v", req)
	}
	if err := json.Unmarshal([]byte(`{"category":"two"}`), &req); err == nil {
		t.Fatalf("expected non-numeric string to fail")
	}
}

func TestRequestBindingRules(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		target  interface{}
		wantErr bool
	}{
		{"question complete", `{"question":"q","answer":"a","difficulty":0,"category":0}`, &CreateQuestionRequest{}, false},
		{"question without difficulty", `{"question":"q","answer":"a","category":0}`, &CreateQuestionRequest{}, true},
		{"question without category", `{"question":"q","answer":"a","difficulty":1}`, &CreateQuestionRequest{}, true},
		{"question with empty answer", `{"question":"q","answer":"","difficulty":1,"category":0}`, &CreateQuestionRequest{}, true},
		{"empty search term", `{"searchTerm":""}`, &SearchRequest{}, false},
		{"missing search term", `{}`, &SearchRequest{}, true},
		{"quiz any category", `{"previous_questions":[],"quiz_category":{"type":"click"}}`, &QuizRequest{}, false},
		{"quiz one category", `{"previous_questions":[1],"quiz_category":{"type":"History","id":"3"}}`, &QuizRequest{}, false},
		{"quiz without previous", `{"quiz_category":{"type":"click"}}`, &QuizRequest{}, true},
		{"quiz without category", `{"previous_questions":[]}`, &QuizRequest{}, true},
		{"quiz category without id", `{"previous_questions":[],"quiz_category":{"type":"History"}}`, &QuizRequest{}, true},
		{"drink complete", `{"title":"Mocha","recipe":{"name":"cocoa","color":"brown","parts":1}}`, &CreateDrinkRequest{}, false},
		{"drink without recipe", `{"title":"Mocha"}`, &CreateDrinkRequest{}, true},
		{"patch with title only", `{"title":"Mocha"}`, &UpdateDrinkRequest{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := json.Unmarshal([]byte(tt.body), tt.target); err != nil {
				t.Fatalf("decode: %v", err)
			}
			err := binding.Validator.ValidateStruct(tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected validation result: err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestQuizCategory(t *testing.T) {
	id := flexInt(3)
	if got := quizCategory(&QuizCategoryRequest{Type: "click", ID: &id}); !got.Any {
		t.Fatalf("click should select every category: %+v", got)
	}
	if got := quizCategory(&QuizCategoryRequest{Type: "History", ID: &id}); got.Any || got.ID != 3 {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestBadBodyIsUnprocessable(t *testing.T) {
	e, ok := apperr.As(badBody(errors.New("EOF")))
	if !ok || e.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", e)
	}
}
