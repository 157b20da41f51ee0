package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"trivia-coffee-backend/internal/handlers"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/middleware"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// newEngine builds the middleware chain both services share and renders
// unmatched routes, wrong methods and panics as failure envelopes.
func newEngine(serviceName string, methods []string, msgs handlers.Messages, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		msgs.Abort(c, http.StatusInternalServerError)
	}))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.TraceContext())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(methods))

	r.NoRoute(func(c *gin.Context) { msgs.Abort(c, http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { msgs.Abort(c, http.StatusMethodNotAllowed) })

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	return r
}

func NewTriviaRouter(trivia *services.TriviaService, log *logger.Logger) *gin.Engine {
	r := newEngine("trivia", middleware.TriviaMethods, handlers.TriviaMessages, log)
	h := handlers.NewTriviaHandler(trivia, log)

	r.GET("/categories", h.ListCategories)
	r.GET("/questions", h.ListQuestions)
	r.POST("/questions", h.CreateQuestion)
	r.POST("/questions/search", h.SearchQuestions)
	r.DELETE("/question/:id", h.DeleteQuestion)
	r.GET("/category/:id/questions", h.QuestionsByCategory)
	r.POST("/quizzes", h.PlayQuiz)
	return r
}

func NewCoffeeRouter(drinks *services.DrinkService, tokens *services.TokenService, log *logger.Logger) *gin.Engine {
	r := newEngine("coffee", middleware.CoffeeMethods, handlers.CoffeeMessages, log)
	h := handlers.NewDrinkHandler(drinks, log)
	guard := func(scope string) gin.HandlerFunc {
		return middleware.RequireScope(tokens, scope, log)
	}

	r.GET("/drinks", h.ListDrinks)
	r.GET("/drinks-detail", guard("get:drinks-detail"), h.ListDrinkDetails)
	r.POST("/drinks", guard("post:drinks"), h.CreateDrink)
	r.PATCH("/drinks/:id", guard("patch:drinks"), h.UpdateDrink)
	r.DELETE("/drinks/:id", guard("delete:drinks"), h.DeleteDrink)
	return r
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func Run(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
