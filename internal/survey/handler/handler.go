package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"energyadvice/internal/recommendation"
	"energyadvice/internal/survey/models"
	"energyadvice/internal/survey/service"
	dErrors "energyadvice/pkg/domain-errors"
	"energyadvice/pkg/platform/httputil"
	"energyadvice/pkg/requestcontext"
)

// Service defines the survey operations the handler needs.
type Service interface {
	Catalog() []recommendation.Recommendation
	Start(ctx context.Context) (*service.Started, error)
	Get(ctx context.Context, ref string) (*service.Progress, error)
	Question(ctx context.Context, ref string, q models.QuestionID) (*service.QuestionView, error)
	SubmitAnswer(ctx context.Context, ref string, q models.QuestionID, raw json.RawMessage) (*service.Answered, error)
	Recommendations(ctx context.Context, ref string) ([]models.UserRecommendation, error)
	Recommendation(ctx context.Context, ref string, key models.RecommendationKey) (*service.RecommendationView, error)
	Decide(ctx context.Context, ref string, key models.RecommendationKey, decision models.Decision) (*models.UserRecommendation, error)
	ActionPlan(ctx context.Context, ref string) (*service.ActionPlan, error)
}

// Handler wires survey endpoints to the survey service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a survey handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts survey endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/recommendations", h.HandleCatalog)
	r.Post("/surveys", h.HandleStart)
	r.Route("/surveys/{reference}", func(r chi.Router) {
		r.Use(withReference)
		r.Get("/", h.HandleGetSurvey)
		r.Get("/questions/{question}", h.HandleGetQuestion)
		r.Put("/questions/{question}", h.HandleAnswer)
		r.Get("/recommendations", h.HandleRecommendations)
		r.Get("/recommendations/{key}", h.HandleGetRecommendation)
		r.Put("/recommendations/{key}", h.HandleDecide)
		r.Get("/action-plan", h.HandleActionPlan)
	})
}

// withReference normalises the reference path segment and stores it on the
// request context. Citizens type references back in, so case is ignored.
func withReference(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "reference")))
		if ref == "" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "reference is required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(requestcontext.WithReference(r.Context(), ref)))
	})
}

// HandleCatalog handles GET /recommendations.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, fromCatalog(h.service.Catalog()))
}

// HandleStart handles POST /surveys.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	started, err := h.service.Start(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to start survey", err, "request_id", requestID)
		return
	}

	h.logger.InfoContext(ctx, "survey started",
		"request_id", requestID,
		"reference", started.Reference,
	)
	httputil.WriteJSON(w, http.StatusCreated, &StartResponse{
		Reference:    started.Reference,
		NextQuestion: string(started.NextQuestion),
	})
}

// HandleGetSurvey handles GET /surveys/{reference}.
func (h *Handler) HandleGetSurvey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := requestcontext.Reference(ctx)

	progress, err := h.service.Get(ctx, ref)
	if err != nil {
		h.fail(ctx, w, "failed to load survey", err, "request_id", requestcontext.RequestID(ctx), "reference", ref)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromProgress(progress))
}

// HandleGetQuestion handles GET /surveys/{reference}/questions/{question}.
func (h *Handler) HandleGetQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := requestcontext.Reference(ctx)

	q, err := models.ParseQuestionID(chi.URLParam(r, "question"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.service.Question(ctx, ref, q)
	if err != nil {
		h.fail(ctx, w, "failed to load question", err, "request_id", requestcontext.RequestID(ctx), "reference", ref, "question", q)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &QuestionResponse{
		Question:         string(view.Question),
		Answer:           view.Answer,
		PreviousQuestion: string(view.Previous),
		Terminal:         view.Terminal,
	})
}

// HandleAnswer handles PUT /surveys/{reference}/questions/{question}.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	ref := requestcontext.Reference(ctx)
	start := time.Now()

	q, err := models.ParseQuestionID(chi.URLParam(r, "question"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[AnswerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.SubmitAnswer(ctx, ref, q, req.Answer)
	if err != nil {
		h.fail(ctx, w, "answer rejected", err, "request_id", requestID, "reference", ref, "question", q)
		return
	}

	h.logger.InfoContext(ctx, "answer recorded",
		"request_id", requestID,
		"reference", ref,
		"question", q,
		"next_question", res.NextQuestion,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &AnswerResponse{
		Question:     string(res.Question),
		NextQuestion: string(res.NextQuestion),
		Complete:     res.Terminal,
	})
}

// HandleRecommendations handles GET /surveys/{reference}/recommendations.
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := requestcontext.Reference(ctx)

	recs, err := h.service.Recommendations(ctx, ref)
	if err != nil {
		h.fail(ctx, w, "failed to list recommendations", err, "request_id", requestcontext.RequestID(ctx), "reference", ref)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &RecommendationsResponse{Recommendations: fromRecommendations(recs)})
}

// HandleGetRecommendation handles GET /surveys/{reference}/recommendations/{key}.
func (h *Handler) HandleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := requestcontext.Reference(ctx)

	key, ok := recommendation.ParseKey(chi.URLParam(r, "key"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown recommendation"))
		return
	}

	view, err := h.service.Recommendation(ctx, ref, key)
	if err != nil {
		h.fail(ctx, w, "failed to load recommendation", err, "request_id", requestcontext.RequestID(ctx), "reference", ref, "recommendation", key)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromRecommendationView(view))
}

// HandleDecide handles PUT /surveys/{reference}/recommendations/{key}.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	ref := requestcontext.Reference(ctx)

	key, ok := recommendation.ParseKey(chi.URLParam(r, "key"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown recommendation"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	row, err := h.service.Decide(ctx, ref, key, req.ParsedDecision())
	if err != nil {
		h.fail(ctx, w, "decision rejected", err, "request_id", requestID, "reference", ref, "recommendation", key)
		return
	}

	h.logger.InfoContext(ctx, "decision recorded",
		"request_id", requestID,
		"reference", ref,
		"recommendation", key,
		"decision", row.Decision,
	)
	httputil.WriteJSON(w, http.StatusOK, fromRecommendation(*row))
}

// HandleActionPlan handles GET /surveys/{reference}/action-plan.
func (h *Handler) HandleActionPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := requestcontext.Reference(ctx)

	plan, err := h.service.ActionPlan(ctx, ref)
	if err != nil {
		h.fail(ctx, w, "failed to build action plan", err, "request_id", requestcontext.RequestID(ctx), "reference", ref)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromActionPlan(ref, plan))
}

// fail logs err and writes the error envelope. Client mistakes are logged at
// warn, server-side failures at error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err)
	if code := dErrors.CodeOf(err); code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
