package server

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ff-agent/server/internal/agent/graph"
	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// APIVersion is echoed in every chat payload so clients can detect drift.
const APIVersion = "0.4.0"

// ChatRequest is the single chat entry point's body. A missing thread_id
// starts a fresh conversation under a generated id.
type ChatRequest struct {
	Message  string `json:"message" validate:"required,max=4000"`
	ThreadID string `json:"thread_id" validate:"omitempty,max=128"`
}

// ChatResponse is the unified payload for answer, clarify and error turns.
type ChatResponse struct {
	Type          string          `json:"type"`
	Intent        string          `json:"intent"`
	Content       string          `json:"content"`
	Profile       model.Profile   `json:"profile"`
	Actions       []model.Action  `json:"actions"`
	ProductsDebug []model.Product `json:"products_debug"`
	ToolError     string          `json:"tool_error,omitempty"`
	ThreadID      string          `json:"thread_id"`
	Version       string          `json:"version"`
}

// Server is the HTTP front door translating /chat requests into graph turns.
type Server struct {
	app      *fiber.App
	runner   graph.Runner
	validate *validator.Validate
}

func New(runner graph.Runner, staticDir string) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		runner:   runner,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/chat", s.handleChat)

	if staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			s.app.Static("/static", staticDir)
			chatPage := filepath.Join(staticDir, "chat.html")
			s.app.Get("/", func(c *fiber.Ctx) error {
				return c.SendFile(chatPage)
			})
		} else {
			logx.Warn().Str("dir", staticDir).Msg("static dir not found; chat page disabled")
		}
	}

	return s
}

// App exposes the fiber app for tests and for listener setup.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "version": APIVersion})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	state, err := s.runner.ProcessTurn(c.Context(), model.TurnInput{
		ThreadID:    threadID,
		UserMessage: req.Message,
	})
	if err != nil {
		// Never leak internals; operators get the cause from the log.
		logx.Error().Err(err).Str("thread_id", threadID).Msg("turn failed")
		return c.JSON(ChatResponse{
			Type:          "error",
			Intent:        model.IntentOther.String(),
			Content:       "Server error. Please try again.",
			Profile:       model.Profile{},
			Actions:       []model.Action{},
			ProductsDebug: []model.Product{},
			ThreadID:      threadID,
			Version:       APIVersion,
		})
	}

	respType := "answer"
	content := state.Answer
	if state.NeedsClarification {
		respType = "clarify"
		content = state.ClarificationQuestion
	}

	return c.JSON(ChatResponse{
		Type:          respType,
		Intent:        state.Intent.String(),
		Content:       content,
		Profile:       state.Profile,
		Actions:       state.Actions,
		ProductsDebug: state.ProductsDebug,
		ToolError:     state.ToolError,
		ThreadID:      threadID,
		Version:       APIVersion,
	})
}
