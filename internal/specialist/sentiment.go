package specialist

import (
	"math"

	"signal-council/internal/domain"
)

// sentimentSpecialists score fields produced by the upstream news, social
// and filings scrapers. All fields are optional.
func sentimentSpecialists() []Strategy {
	return []Strategy{
		newStrategy("sentiment.news", evalNewsSentiment),
		newStrategy("sentiment.social", evalSocialSentiment),
		newStrategy("sentiment.fear_greed", evalFearGreed),
		newStrategy("sentiment.reddit_bulls", evalRedditBulls),
		newStrategy("sentiment.analyst_revisions", evalAnalystRevisions),
		newStrategy("sentiment.headline_shock", evalHeadlineShock),
		newStrategy("sentiment.insider_activity", evalInsiderActivity),
	}
}

// news_sentiment: mean scored sentiment in [-1,1].
func evalNewsSentiment(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "news_sentiment")
	if !ok {
		return neutralVote()
	}
	return signedVote(clamp(v, -1, 1))
}

// social_sentiment in [-1,1], amplified by unusual chatter volume.
func evalSocialSentiment(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	sentiment, ok := floatField(b, "social_sentiment")
	if !ok {
		return neutralVote()
	}
	amp := 0.6
	if buzz, ok := floatField(b, "social_volume_z"); ok {
		amp = clamp(0.6+buzz/4, 0.3, 1)
	}
	return signedVote(clamp(sentiment, -1, 1) * amp)
}

// fear_greed: index 0..100, 50 is neutral.
func evalFearGreed(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "fear_greed")
	if !ok || v < 0 || v > 100 {
		return neutralVote()
	}
	return signedVote((v - 50) / 50)
}

// reddit_bull_ratio: fraction of bullish posts, 0..1.
func evalRedditBulls(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "reddit_bull_ratio")
	if !ok || v < 0 || v > 1 {
		return neutralVote()
	}
	return signedVote(2*v - 1)
}

// analyst_revision: net revision direction in [-1,1].
func evalAnalystRevisions(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "analyst_revision")
	if !ok {
		return neutralVote()
	}
	return signedVote(clamp(v, -1, 1))
}

// headline_shock: 0..1 severity of adverse one-off news. Only ever drags the
// score down; there is no bullish shock.
func evalHeadlineShock(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "headline_shock")
	if !ok || v <= 0 {
		return neutralVote()
	}
	return vote(neutralScore - 40*clamp(v, 0, 1))
}

// insider_net_buys: signed count of insider buys minus sells.
func evalInsiderActivity(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "insider_net_buys")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v / 4))
}
