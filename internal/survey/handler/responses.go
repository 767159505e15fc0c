package handler

import (
	"time"

	"energyadvice/internal/recommendation"
	"energyadvice/internal/survey/models"
	"energyadvice/internal/survey/service"
)

// StartResponse is the HTTP response for POST /surveys.
type StartResponse struct {
	Reference    string `json:"reference"`
	NextQuestion string `json:"next_question"`
}

// SurveyResponse is the HTTP response for GET /surveys/{reference}.
type SurveyResponse struct {
	Reference       string         `json:"reference"`
	CurrentQuestion string         `json:"current_question"`
	Complete        bool           `json:"complete"`
	AnsweredPath    []string       `json:"answered_path"`
	Answers         map[string]any `json:"answers"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// QuestionResponse is the HTTP response for GET /surveys/{reference}/questions/{question}.
type QuestionResponse struct {
	Question         string `json:"question"`
	Answer           any    `json:"answer"`
	PreviousQuestion string `json:"previous_question,omitempty"`
	Terminal         bool   `json:"terminal"`
}

// AnswerResponse is the HTTP response for PUT /surveys/{reference}/questions/{question}.
type AnswerResponse struct {
	Question     string `json:"question"`
	NextQuestion string `json:"next_question"`
	Complete     bool   `json:"complete"`
}

// RecommendationResponse is one ledger row with display text.
type RecommendationResponse struct {
	Key            string `json:"key"`
	Title          string `json:"title"`
	MinInstallCost int    `json:"min_install_cost"`
	MaxInstallCost int    `json:"max_install_cost"`
	Saving         int    `json:"saving"`
	Decision       string `json:"decision"`
	CostRange      string `json:"cost_range"`
	AnnualSaving   string `json:"annual_saving"`
}

// RecommendationsResponse is the HTTP response for GET /surveys/{reference}/recommendations.
type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// RecommendationDetailResponse is the HTTP response for GET /surveys/{reference}/recommendations/{key}.
type RecommendationDetailResponse struct {
	RecommendationResponse
	Summary  string `json:"summary"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// CatalogEntryResponse is one entry of GET /recommendations.
type CatalogEntryResponse struct {
	Key            string `json:"key"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	MinInstallCost int    `json:"min_install_cost"`
	MaxInstallCost int    `json:"max_install_cost"`
	Saving         int    `json:"saving"`
}

// CatalogResponse is the HTTP response for GET /recommendations.
type CatalogResponse struct {
	Recommendations []CatalogEntryResponse `json:"recommendations"`
}

// TotalsResponse sums the saved recommendations.
type TotalsResponse struct {
	MinInstallCost int    `json:"min_install_cost"`
	MaxInstallCost int    `json:"max_install_cost"`
	Saving         int    `json:"saving"`
	CostRange      string `json:"cost_range"`
	AnnualSaving   string `json:"annual_saving"`
}

// ActionPlanResponse is the HTTP response for GET /surveys/{reference}/action-plan.
type ActionPlanResponse struct {
	Reference   string                   `json:"reference"`
	Saved       []RecommendationResponse `json:"saved"`
	DecideLater []RecommendationResponse `json:"decide_later"`
	Totals      TotalsResponse           `json:"totals"`
}

func fromProgress(p *service.Progress) *SurveyResponse {
	answers := make(map[string]any)
	for _, q := range models.AnswerableQuestions() {
		if v := p.Record.AnswerFor(q); v != nil {
			answers[string(q)] = v
		}
	}
	path := make([]string, 0, len(p.Path))
	for _, q := range p.Path {
		path = append(path, string(q))
	}
	return &SurveyResponse{
		Reference:       p.Record.Reference,
		CurrentQuestion: string(p.CurrentQuestion),
		Complete:        p.Complete,
		AnsweredPath:    path,
		Answers:         answers,
		CreatedAt:       p.Record.CreatedAt,
		UpdatedAt:       p.Record.UpdatedAt,
	}
}

func fromRecommendation(r models.UserRecommendation) RecommendationResponse {
	return RecommendationResponse{
		Key:            string(r.Key),
		Title:          r.Title,
		MinInstallCost: r.MinInstallCost,
		MaxInstallCost: r.MaxInstallCost,
		Saving:         r.Saving,
		Decision:       string(r.Decision),
		CostRange:      recommendation.FormatCostRange(r.MinInstallCost, r.MaxInstallCost),
		AnnualSaving:   recommendation.FormatAnnualSaving(r.Saving),
	}
}

func fromRecommendations(recs []models.UserRecommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, fromRecommendation(r))
	}
	return out
}

func fromRecommendationView(v *service.RecommendationView) *RecommendationDetailResponse {
	return &RecommendationDetailResponse{
		RecommendationResponse: fromRecommendation(v.Recommendation),
		Summary:                v.Summary,
		Position:               v.Position,
		Total:                  v.Total,
		Previous:               string(v.Previous),
		Next:                   string(v.Next),
	}
}

func fromCatalog(entries []recommendation.Recommendation) *CatalogResponse {
	out := make([]CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, CatalogEntryResponse{
			Key:            string(e.Key),
			Title:          e.Title,
			Summary:        e.Summary,
			MinInstallCost: e.MinInstallCost,
			MaxInstallCost: e.MaxInstallCost,
			Saving:         e.Saving,
		})
	}
	return &CatalogResponse{Recommendations: out}
}

func fromActionPlan(ref string, p *service.ActionPlan) *ActionPlanResponse {
	return &ActionPlanResponse{
		Reference:   ref,
		Saved:       fromRecommendations(p.Saved),
		DecideLater: fromRecommendations(p.DecideLater),
		Totals: TotalsResponse{
			MinInstallCost: p.Totals.MinInstallCost,
			MaxInstallCost: p.Totals.MaxInstallCost,
			Saving:         p.Totals.Saving,
			CostRange:      p.CostRange,
			AnnualSaving:   p.AnnualSaving,
		},
	}
}
