package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/config"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/agents"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/store"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

// healthProbeTimeout bounds the Ollama reachability check on the health
// and status endpoints so they answer quickly even when the local server
// is down.
const healthProbeTimeout = 5 * time.Second

// Handler holds the dependencies of all API endpoints.
type Handler struct {
	orchestrator *agents.Orchestrator
	router       *agents.Router
	enhancer     *agents.Enhancer
	projects     store.ProjectStore
	local        *provider.Ollama
	cfg          config.Config
	log          *zap.Logger
}

func NewHandler(
	log *zap.Logger,
	cfg config.Config,
	orchestrator *agents.Orchestrator,
	router *agents.Router,
	enhancer *agents.Enhancer,
	projects store.ProjectStore,
	local *provider.Ollama,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		router:       router,
		enhancer:     enhancer,
		projects:     projects,
		local:        local,
		cfg:          cfg,
		log:          log,
	}
}

// --- Request / response payloads ---

type generateRequest struct {
	Prompt        string `json:"prompt" binding:"required"`
	ProjectID     string `json:"project_id"`
	EnhancePrompt *bool  `json:"enhance_prompt"`
	IncludeImages *bool  `json:"include_images"`
	SingleFile    *bool  `json:"single_file"`
}

type generateResponse struct {
	Success        bool   `json:"success"`
	ProjectID      string `json:"project_id"`
	HTML           string `json:"html"`
	CSS            string `json:"css"`
	JS             string `json:"javascript"`
	EnhancedPrompt string `json:"enhanced_prompt,omitempty"`
	Error          string `json:"error,omitempty"`
	Warning        string `json:"warning,omitempty"`
	ModelUsed      string `json:"model_used"`
}

type chatRequest struct {
	ProjectID   string           `json:"project_id" binding:"required"`
	Message     string           `json:"message" binding:"required"`
	CurrentHTML string           `json:"current_html"`
	CurrentCSS  string           `json:"current_css"`
	CurrentJS   string           `json:"current_js"`
	History     []types.ChatTurn `json:"history"`
}

type chatResponse struct {
	Success           bool   `json:"success"`
	ProjectID         string `json:"project_id"`
	HTML              string `json:"html"`
	CSS               string `json:"css"`
	JS                string `json:"javascript"`
	AssistantResponse string `json:"assistant_response,omitempty"`
	Error             string `json:"error,omitempty"`
	ModelUsed         string `json:"model_used"`
}

type enhanceRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type routeRequest struct {
	Specification string `json:"specification" binding:"required"`
}

type routeResponse struct {
	Success     bool           `json:"success"`
	Parsed      bool           `json:"parsed"`
	Plan        types.TaskPlan `json:"plan"`
	RawResponse string         `json:"raw_response,omitempty"`
	Error       string         `json:"error,omitempty"`
	ModelUsed   string         `json:"model_used,omitempty"`
}

// --- Handlers ---

// POST /api/generate
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		// gin's required binding accepts whitespace; this is still caller
		// error, not an upstream one.
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must not be empty"})
		return
	}

	result := h.orchestrator.Generate(c.Request.Context(), agents.GenerateRequest{
		Prompt:        req.Prompt,
		ProjectID:     req.ProjectID,
		EnhancePrompt: boolOr(req.EnhancePrompt, true),
		IncludeImages: boolOr(req.IncludeImages, false),
		SingleFile:    boolOr(req.SingleFile, true),
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, generateResponse{
		Success:        result.Success,
		ProjectID:      result.ProjectID,
		HTML:           result.Artifacts.HTML,
		CSS:            result.Artifacts.CSS,
		JS:             result.Artifacts.JS,
		EnhancedPrompt: result.EnhancedPrompt,
		Error:          result.Error,
		Warning:        result.Warning,
		ModelUsed:      string(result.ProviderUsed),
	})
}

// POST /api/chat
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	result := h.orchestrator.Chat(c.Request.Context(), agents.ChatRequest{
		ProjectID: req.ProjectID,
		Message:   req.Message,
		Current: types.Artifacts{
			HTML: req.CurrentHTML,
			CSS:  req.CurrentCSS,
			JS:   req.CurrentJS,
		},
		History: req.History,
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, chatResponse{
		Success:           result.Success,
		ProjectID:         result.ProjectID,
		HTML:              result.Artifacts.HTML,
		CSS:               result.Artifacts.CSS,
		JS:                result.Artifacts.JS,
		AssistantResponse: result.AssistantResponse,
		Error:             result.Error,
		ModelUsed:         string(result.ProviderUsed),
	})
}

// POST /api/enhance
func (h *Handler) Enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	enhanced, tag := h.enhancer.Enhance(c.Request.Context(), req.Prompt)
	c.JSON(http.StatusOK, gin.H{
		"enhanced_prompt": enhanced,
		"model_used":      string(tag),
	})
}

// POST /api/route
func (h *Handler) Route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.router.Route(c.Request.Context(), req.Specification)
	if err != nil {
		c.JSON(http.StatusBadGateway, routeResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, routeResponse{
		Success:     true,
		Parsed:      result.Parsed,
		Plan:        result.Plan,
		RawResponse: result.Raw,
		ModelUsed:   string(result.ProviderUsed),
	})
}

// GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	summaries, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.log.Error("project listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": summaries})
}

// GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	projectID := c.Param("id")

	artifacts, meta, err := h.projects.Load(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.log.Error("project load failed", zap.String("project_id", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		"html":       artifacts.HTML,
		"css":        artifacts.CSS,
		"javascript": artifacts.JS,
		"metadata":   meta,
	})
}

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	ollamaStatus := "connected"
	if _, err := h.local.ListModels(ctx); err != nil {
		ollamaStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"ollama":                ollamaStatus,
		"cloud_fallback":        h.cfg.FallbackToCloud,
		"openrouter_configured": h.cfg.OpenRouterAPIKey != "",
	})
}

// GET /api/status
func (h *Handler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	models, err := h.local.ListModels(ctx)
	if err != nil {
		models = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ollama": gin.H{
			"host":             h.cfg.OllamaHost,
			"chat_model":       h.cfg.OllamaChatModel,
			"code_model":       h.cfg.OllamaCodeModel,
			"router_model":     h.cfg.OllamaRouterModel,
			"available_models": models,
		},
		"cloud": gin.H{
			"openrouter_configured": h.cfg.OpenRouterAPIKey != "",
			"fallback_enabled":      h.cfg.FallbackToCloud,
			"prefer_cloud":          h.cfg.PreferCloud,
		},
	})
}

// GET /api/models
func (h *Handler) ListModels(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	models, err := h.local.ListModels(ctx)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error(), "models": []string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "models": models})
}

// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Multi-Agent MCP Backend",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": gin.H{
			"generate": "POST /api/generate",
			"chat":     "POST /api/chat",
			"enhance":  "POST /api/enhance",
			"route":    "POST /api/route",
			"projects": "GET /api/projects",
			"status":   "GET /api/status",
			"health":   "GET /api/health",
		},
	})
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
