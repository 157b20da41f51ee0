package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia-coffee-backend/internal/database"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/models"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTriviaServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.MigrateTrivia(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, label := range []string{"Science", "Art"} {
		if err := db.Create(&models.Category{Type: label}).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}
	return NewTriviaRouter(services.NewTriviaService(db), logger.Nop()), db
}

func addQuestions(t *testing.T, db *gorm.DB, n int, stored uint) {
	t.Helper()
	for i := 0; i < n; i++ {
		q := models.Question{
			Question:   fmt.Sprintf("Question %d about %d", i+1, stored),
			Answer:     "yes",
			Difficulty: 1,
			Category:   stored,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}, header ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func wantEnvelope(t *testing.T, rec *httptest.ResponseRecorder, body map[string]interface{}, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, status, rec.Body.String())
	}
	if body["success"] != false || body["error"] != float64(status) || body["message"] != message {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func wantOK(t *testing.T, rec *httptest.ResponseRecorder, body map[string]interface{}) {
	t.Helper()
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("unexpected response: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestTriviaCategories(t *testing.T) {
	r, _ := newTriviaServer(t)

	rec, body := do(t, r, http.MethodGet, "/categories", nil)
	wantOK(t, rec, body)
	cats := body["categories"].([]interface{})
	if len(cats) != 2 || cats[0] != "Science" || cats[1] != "Art" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestTriviaListQuestionsPaging(t *testing.T) {
	r, db := newTriviaServer(t)
	addQuestions(t, db, 12, 1)

	rec, body := do(t, r, http.MethodGet, "/questions?page=2", nil)
	wantOK(t, rec, body)
	if got := len(body["questions"].([]interface{})); got != 2 {
		t.Fatalf("unexpected page size: got=%d want=2", got)
	}
	if body["total_questions"] != float64(12) || body["current_category"] != "Science" {
		t.Fatalf("unexpected listing: %v", body)
	}

	rec, body = do(t, r, http.MethodGet, "/questions", nil)
	wantOK(t, rec, body)
	first := body["questions"].([]interface{})[0].(map[string]interface{})
	if first["category"] != float64(1) {
		t.Fatalf("expected stored category id in payload: %v", first)
	}

	rec, body = do(t, r, http.MethodGet, "/questions?page=99", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")
}

func TestTriviaDeleteQuestion(t *testing.T) {
	r, db := newTriviaServer(t)
	addQuestions(t, db, 1, 1)

	rec, body := do(t, r, http.MethodDelete, "/question/1", nil)
	wantOK(t, rec, body)

	rec, body = do(t, r, http.MethodDelete, "/question/1", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")

	rec, body = do(t, r, http.MethodDelete, "/question/abc", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")
}

func TestTriviaCreateQuestion(t *testing.T) {
	r, db := newTriviaServer(t)

	rec, body := do(t, r, http.MethodPost, "/questions", `{"question":"Who painted Guernica?","answer":"Picasso","difficulty":"2","category":"1"}`)
	wantOK(t, rec, body)

	var stored models.Question
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	if stored.Category != 2 || stored.Difficulty != 2 {
		t.Fatalf("unexpected stored question: %+v", stored)
	}

	rec, body = do(t, r, http.MethodPost, "/questions", map[string]interface{}{"question": "q", "answer": "a", "difficulty": 1})
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")

	rec, body = do(t, r, http.MethodPost, "/questions", map[string]interface{}{"question": "q", "answer": "a", "category": 0})
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")

	rec, body = do(t, r, http.MethodPost, "/questions", map[string]interface{}{"question": "zero", "answer": "a", "difficulty": 0, "category": 0})
	wantOK(t, rec, body)

	rec, body = do(t, r, http.MethodPost, "/questions", map[string]interface{}{"question": "q", "answer": "a", "difficulty": 1, "category": 40})
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")

	rec, body = do(t, r, http.MethodPost, "/questions", `{"question":`)
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
}

func TestTriviaSearch(t *testing.T) {
	r, db := newTriviaServer(t)
	addQuestions(t, db, 12, 1)

	rec, body := do(t, r, http.MethodPost, "/questions/search", map[string]string{"searchTerm": "QUESTION 1 "})
	wantOK(t, rec, body)
	// The trailing space keeps "Question 10" through "Question 12" out.
	if body["total_questions"] != float64(1) || body["currentCategory"] != "Science" {
		t.Fatalf("unexpected search result: %v", body)
	}

	rec, body = do(t, r, http.MethodPost, "/questions/search", map[string]string{"searchTerm": "nothing like this"})
	wantOK(t, rec, body)
	if got := body["questions"].([]interface{}); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	rec, body = do(t, r, http.MethodPost, "/questions/search", map[string]string{})
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
}

func TestTriviaQuestionsByCategory(t *testing.T) {
	r, db := newTriviaServer(t)
	addQuestions(t, db, 3, 1)
	addQuestions(t, db, 2, 2)

	rec, body := do(t, r, http.MethodGet, "/category/1/questions", nil)
	wantOK(t, rec, body)
	if body["total_questions"] != float64(2) || body["current_category"] != "Art" {
		t.Fatalf("unexpected category listing: %v", body)
	}

	rec, body = do(t, r, http.MethodGet, "/category/1/questions?page=2", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")

	rec, body = do(t, r, http.MethodGet, "/category/9/questions", nil)
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")

	rec, body = do(t, r, http.MethodGet, "/category/art/questions", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")

	rec, body = do(t, r, http.MethodGet, "/category/-5/questions", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")
}

func TestTriviaQuiz(t *testing.T) {
	r, db := newTriviaServer(t)
	addQuestions(t, db, 2, 1)
	addQuestions(t, db, 1, 2)

	rec, body := do(t, r, http.MethodPost, "/quizzes", `{"previous_questions":[1],"quiz_category":{"type":"Science","id":"0"}}`)
	wantOK(t, rec, body)
	q := body["question"].(map[string]interface{})
	if q["id"] != float64(2) {
		t.Fatalf("expected the only unseen Science question, got %v", q)
	}

	rec, body = do(t, r, http.MethodPost, "/quizzes", `{"previous_questions":[1,2,3],"quiz_category":{"type":"click","id":0}}`)
	wantOK(t, rec, body)
	if _, ok := body["question"]; ok {
		t.Fatalf("expected exhausted quiz, got %v", body)
	}

	rec, body = do(t, r, http.MethodPost, "/quizzes", `{"quiz_category":{"type":"click","id":0}}`)
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")

	rec, body = do(t, r, http.MethodPost, "/quizzes", `{"previous_questions":[]}`)
	wantEnvelope(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
}

func TestTriviaFallbackEnvelopes(t *testing.T) {
	r, _ := newTriviaServer(t)

	rec, body := do(t, r, http.MethodGet, "/nowhere", nil)
	wantEnvelope(t, rec, body, http.StatusNotFound, "Not found")

	rec, body = do(t, r, http.MethodPut, "/categories", nil)
	wantEnvelope(t, rec, body, http.StatusMethodNotAllowed, "method not allowed")

	rec, body = do(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || body["service"] != "trivia" {
		t.Fatalf("unexpected health response: %d %v", rec.Code, body)
	}
}
