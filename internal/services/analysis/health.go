package analysis

import (
	"context"
	"regexp"
	"strings"

	"github.com/finsightapp/finsight/internal/models"
	"github.com/finsightapp/finsight/internal/services/profile"
	"github.com/finsightapp/finsight/internal/services/prompt"
)

// HealthReport returns the owner's financial health report, cached under the
// fixed health subject in the recommendations collection. No market data is
// involved; the report is a pure function of the profile, so the profile
// hash alone decides freshness.
func (o *Orchestrator) HealthReport(ctx context.Context, ownerID string, forceRefresh bool) (*Result, error) {
	p, err := o.loadProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	hash := profile.Hash(p)

	if !forceRefresh {
		if cached := o.store.Get(ctx, models.CollectionFinancialRecommendations, ownerID, models.HealthReportSubject); cached != nil && cached.ProfileHash == hash {
			o.logger.Debug().
				Str("key", cached.Key()).
				Dur("age", cached.Age(o.now())).
				Msg("Health report cache hit")
			return &Result{Record: cached, FromCache: true}, nil
		}
	}

	key := models.CollectionFinancialRecommendations + "/" + models.AnalysisKey(ownerID, models.HealthReportSubject)
	generate := func(ctx context.Context) (*models.AnalysisRecord, error) {
		text, err := o.llm.Complete(ctx, prompt.HealthReport(p))
		if err != nil {
			return nil, err
		}
		return &models.AnalysisRecord{
			OwnerID:      ownerID,
			Symbol:       models.HealthReportSubject,
			AnalysisText: text,
			ProfileHash:  hash,
			GeneratedAt:  o.now().UTC(),
		}, nil
	}
	return o.runFlight(ctx, models.CollectionFinancialRecommendations, key, forceRefresh, generate)
}

// riskLevelPattern matches the labeled risk determination the health report
// prompt demands, tolerating markdown emphasis around the label.
var riskLevelPattern = regexp.MustCompile(`(?i)current risk level:?\**\s*(high|medium|low)`)

// ExtractRiskLevel pulls the High/Medium/Low determination out of a health
// report, or returns "" when the report does not carry one.
func ExtractRiskLevel(report string) string {
	m := riskLevelPattern.FindStringSubmatch(report)
	if m == nil {
		return ""
	}
	level := strings.ToLower(m[1])
	return strings.ToUpper(level[:1]) + level[1:]
}
