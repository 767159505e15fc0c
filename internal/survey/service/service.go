package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"energyadvice/internal/recommendation"
	"energyadvice/internal/survey/metrics"
	"energyadvice/internal/survey/models"
	"energyadvice/internal/survey/navigation"
	dErrors "energyadvice/pkg/domain-errors"
	"energyadvice/pkg/platform/sentinel"
	"energyadvice/pkg/requestcontext"
)

// Store is the reference-token store the service persists answer records in.
type Store interface {
	GenerateReference(ctx context.Context) (string, error)
	IsReferenceValid(ctx context.Context, reference string) (bool, error)
	Load(ctx context.Context, reference string) (*models.AnswerRecord, error)
	Save(ctx context.Context, record *models.AnswerRecord) error
}

// Service runs a citizen through the survey: it loads the answer record for a
// reference, applies answers, asks navigation for the next question, keeps
// the recommendation ledger in step with eligibility, and saves.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	clock   func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithClock sets the clock used to stamp records and bound the year built.
// Without it the request-scoped time is used.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("energyadvice/survey"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Started is the result of issuing a new reference.
type Started struct {
	Reference    string
	NextQuestion models.QuestionID
}

// Progress describes where a citizen is in the survey.
type Progress struct {
	Record          *models.AnswerRecord
	CurrentQuestion models.QuestionID
	Path            []models.QuestionID
	Complete        bool
}

// QuestionView is a single question with its stored answer and back link.
type QuestionView struct {
	Question models.QuestionID
	Answer   any
	Previous models.QuestionID
	Terminal bool
}

// Answered is the result of accepting an answer.
type Answered struct {
	Question     models.QuestionID
	NextQuestion models.QuestionID
	Terminal     bool
}

// RecommendationView is one eligible recommendation with its place in the
// citizen's list.
type RecommendationView struct {
	Recommendation models.UserRecommendation
	Summary        string
	Position       int
	Total          int
	Previous       models.RecommendationKey
	Next           models.RecommendationKey
}

// ActionPlan is the citizen's saved and postponed recommendations.
type ActionPlan struct {
	Saved        []models.UserRecommendation
	DecideLater  []models.UserRecommendation
	Totals       recommendation.Totals
	CostRange    string
	AnnualSaving string
}

// Catalog returns every recommendation the service can make.
func (s *Service) Catalog() []recommendation.Recommendation {
	return recommendation.Catalog()
}

// Start issues a fresh reference backed by an empty answer record.
func (s *Service) Start(ctx context.Context) (*Started, error) {
	ctx, span := s.tracer.Start(ctx, "survey.Start")
	defer span.End()

	start := time.Now()
	ref, err := s.store.GenerateReference(ctx)
	s.metrics.ObserveStoreLatency("generate", time.Since(start))
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "could not issue a unique reference")
		}
		return nil, storeFailure(err, "failed to start survey")
	}
	span.SetAttributes(attribute.String("reference", ref))

	s.metrics.IncrementSurveysStarted()
	s.logger.InfoContext(ctx, "survey started", "reference", ref)

	return &Started{Reference: ref, NextQuestion: navigation.First()}, nil
}

// IsValid reports whether ref names a stored survey.
func (s *Service) IsValid(ctx context.Context, ref string) (bool, error) {
	ok, err := s.store.IsReferenceValid(ctx, ref)
	if err != nil {
		return false, storeFailure(err, "failed to check reference")
	}
	return ok, nil
}

// Get returns the stored answers together with the question to resume at.
func (s *Service) Get(ctx context.Context, ref string) (*Progress, error) {
	ctx, span := s.tracer.Start(ctx, "survey.Get", trace.WithAttributes(attribute.String("reference", ref)))
	defer span.End()

	record, err := s.load(ctx, ref)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	current := navigation.Resume(record)
	return &Progress{
		Record:          record,
		CurrentQuestion: current,
		Path:            answeredPath(record, current),
		Complete:        current.IsTerminal(),
	}, nil
}

// Question returns the stored answer for q and the question that precedes it
// on the citizen's path.
func (s *Service) Question(ctx context.Context, ref string, q models.QuestionID) (*QuestionView, error) {
	if !q.IsKnown() {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown question")
	}
	record, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}

	view := &QuestionView{
		Question: q,
		Answer:   record.AnswerFor(q),
		Terminal: q.IsTerminal(),
	}
	if prev, ok := navigation.Previous(q, record); ok {
		view.Previous = prev
	}
	return view, nil
}

// SubmitAnswer stores raw as the answer to q and returns the next question.
// Any answerable question may be answered at any time, so a citizen can go
// back and change an earlier answer.
func (s *Service) SubmitAnswer(ctx context.Context, ref string, q models.QuestionID, raw json.RawMessage) (*Answered, error) {
	ctx, span := s.tracer.Start(ctx, "survey.SubmitAnswer", trace.WithAttributes(
		attribute.String("reference", ref),
		attribute.String("question", string(q)),
	))
	defer span.End()

	if !q.IsKnown() {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown question")
	}
	if q.IsTerminal() {
		return nil, dErrors.New(dErrors.CodeBadRequest, string(q)+" does not take an answer")
	}

	record, err := s.load(ctx, ref)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	now := s.now(ctx)
	if err := record.Apply(q, raw, now); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	next, err := navigation.Next(q, record)
	if err != nil {
		recordSpanError(span, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve next question")
	}

	record.UpdatedAt = now
	if err := s.save(ctx, record); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	s.metrics.IncrementAnswer(string(q))
	if next.IsTerminal() {
		s.metrics.IncrementOutcome(string(next))
	}
	s.logger.DebugContext(ctx, "answer recorded",
		"reference", ref,
		"question", q,
		"next_question", next,
	)

	return &Answered{Question: q, NextQuestion: next, Terminal: next.IsTerminal()}, nil
}

// Recommendations returns the citizen's eligible recommendations with their
// current decisions. Rows are created the first time a recommendation
// becomes eligible and are never removed.
func (s *Service) Recommendations(ctx context.Context, ref string) ([]models.UserRecommendation, error) {
	ctx, span := s.tracer.Start(ctx, "survey.Recommendations", trace.WithAttributes(attribute.String("reference", ref)))
	defer span.End()

	record, keys, err := s.loadEligible(ctx, ref)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return recommendation.ForKeys(record.UserRecommendations, keys), nil
}

// Recommendation returns one eligible recommendation with its position in the
// citizen's list and its neighbours.
func (s *Service) Recommendation(ctx context.Context, ref string, key models.RecommendationKey) (*RecommendationView, error) {
	entry, ok := recommendation.Lookup(key)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown recommendation")
	}

	record, keys, err := s.loadEligible(ctx, ref)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i, k := range keys {
		if k == key {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "recommendation does not apply to this home")
	}

	view := &RecommendationView{
		Recommendation: recommendation.ForKeys(record.UserRecommendations, keys[pos:pos+1])[0],
		Summary:        entry.Summary,
		Position:       pos + 1,
		Total:          len(keys),
	}
	if pos > 0 {
		view.Previous = keys[pos-1]
	}
	if pos+1 < len(keys) {
		view.Next = keys[pos+1]
	}
	return view, nil
}

// Decide files a recommendation under decision, overwriting any earlier
// decision.
func (s *Service) Decide(ctx context.Context, ref string, key models.RecommendationKey, decision models.Decision) (*models.UserRecommendation, error) {
	ctx, span := s.tracer.Start(ctx, "survey.Decide", trace.WithAttributes(
		attribute.String("reference", ref),
		attribute.String("recommendation", string(key)),
		attribute.String("decision", string(decision)),
	))
	defer span.End()

	if _, ok := recommendation.Lookup(key); !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown recommendation")
	}
	if !decision.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "decision must be one of undecided, save_to_action_plan, decide_later, reject")
	}

	record, _, err := s.loadEligible(ctx, ref)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if err := recommendation.RecordDecision(record.UserRecommendations, key, decision); err != nil {
		recordSpanError(span, err)
		if errors.Is(err, recommendation.ErrNotMaterialised) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recommendation does not apply to this home")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid decision")
	}

	record.UpdatedAt = s.now(ctx)
	if err := s.save(ctx, record); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	s.metrics.IncrementDecision(string(key), string(decision))
	s.logger.InfoContext(ctx, "recommendation decided",
		"reference", ref,
		"recommendation", key,
		"decision", decision,
	)

	row := recommendation.ForKeys(record.UserRecommendations, []models.RecommendationKey{key})[0]
	return &row, nil
}

// ActionPlan returns the saved and postponed recommendations and the totals
// over the saved set, computed from the live decisions.
func (s *Service) ActionPlan(ctx context.Context, ref string) (*ActionPlan, error) {
	ctx, span := s.tracer.Start(ctx, "survey.ActionPlan", trace.WithAttributes(attribute.String("reference", ref)))
	defer span.End()

	record, err := s.load(ctx, ref)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	totals := recommendation.ComputeTotals(record.UserRecommendations)
	return &ActionPlan{
		Saved:        recommendation.Saved(record.UserRecommendations),
		DecideLater:  recommendation.DecideLater(record.UserRecommendations),
		Totals:       totals,
		CostRange:    recommendation.FormatCostRange(totals.MinInstallCost, totals.MaxInstallCost),
		AnnualSaving: recommendation.FormatAnnualSaving(totals.Saving),
	}, nil
}

// loadEligible loads the record and materialises a row for every currently
// eligible recommendation, saving when new rows were added.
func (s *Service) loadEligible(ctx context.Context, ref string) (*models.AnswerRecord, []models.RecommendationKey, error) {
	record, err := s.load(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	keys := recommendation.Eligible(record)
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		s.logger.DebugContext(ctx, "eligibility evaluated",
			"reference", ref,
			"verdicts", recommendation.Explain(record),
		)
	}

	var fresh []models.RecommendationKey
	for _, key := range keys {
		if len(recommendation.ForKeys(record.UserRecommendations, []models.RecommendationKey{key})) == 0 {
			fresh = append(fresh, key)
		}
	}
	if len(fresh) == 0 {
		return record, keys, nil
	}

	record.UserRecommendations, _ = recommendation.Materialise(record.UserRecommendations, fresh)
	record.UpdatedAt = s.now(ctx)
	if err := s.save(ctx, record); err != nil {
		return nil, nil, err
	}
	for _, key := range fresh {
		s.metrics.IncrementMaterialised(string(key))
	}
	return record, keys, nil
}

func (s *Service) load(ctx context.Context, ref string) (*models.AnswerRecord, error) {
	start := time.Now()
	record, err := s.store.Load(ctx, ref)
	s.metrics.ObserveStoreLatency("load", time.Since(start))
	if err != nil {
		return nil, storeFailure(err, "failed to load survey")
	}
	return record, nil
}

func (s *Service) save(ctx context.Context, record *models.AnswerRecord) error {
	start := time.Now()
	err := s.store.Save(ctx, record)
	s.metrics.ObserveStoreLatency("save", time.Since(start))
	if err != nil {
		return storeFailure(err, "failed to save survey")
	}
	return nil
}

// storeFailure translates store sentinels into domain errors.
func storeFailure(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "survey not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "survey store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

// answeredPath lists the questions on the citizen's path up to, but not
// including, current.
func answeredPath(record *models.AnswerRecord, current models.QuestionID) []models.QuestionID {
	path := navigation.Path(record)
	for i, q := range path {
		if q == current {
			return path[:i]
		}
	}
	return path
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
