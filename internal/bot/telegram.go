package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"signal-council/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type DecisionReader interface {
	GetDecision(ctx context.Context, id string) (*domain.Decision, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Decision, error)
}

type PerformanceBoard interface {
	Leaderboard(ctx context.Context) ([]domain.ComponentPerformance, error)
	Component(ctx context.Context, componentID string) (*domain.ComponentPerformance, error)
}

type Explainer interface {
	ExplainDecision(ctx context.Context, decision *domain.Decision) (string, error)
}

// StartTelegramBot exposes the council's read surface over Telegram. The bot
// never triggers analyses or outcomes; those stay behind the HTTP API.
func StartTelegramBot(decisions DecisionReader, performance PerformanceBoard, explainer Explainer) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/decisions", func(c tele.Context) error {
		recent, err := decisions.ListRecent(context.Background(), 10)
		if err != nil {
			return c.Send(fmt.Sprintf("Error listing decisions: %v", err))
		}
		if len(recent) == 0 {
			return c.Send("No decisions yet")
		}
		var sb strings.Builder
		for _, d := range recent {
			sb.WriteString(fmt.Sprintf("%s %s %s score=%.1f conf=%.0f [%s]\n",
				shortID(d.ID), d.Ticker, d.FinalAction, d.CompositeScore, d.Confidence, d.Status))
		}
		return c.Send(sb.String())
	})

	b.Handle("/decision", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /decision <id>")
		}
		d, err := decisions.GetDecision(context.Background(), args[0])
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching decision: %v", err))
		}
		return c.Send(formatDecision(d))
	})

	b.Handle("/performance", func(c tele.Context) error {
		args := c.Args()
		if len(args) > 0 {
			comp, err := performance.Component(context.Background(), args[0])
			if err != nil {
				return c.Send(fmt.Sprintf("Error fetching component: %v", err))
			}
			return c.Send(fmt.Sprintf("%s (%s)\nAccuracy: %.0f%% over %d graded\nTrust: %.3f\nWeight: %.2f",
				comp.ComponentID, comp.Kind, comp.Accuracy*100, len(comp.History), comp.TrustScore, comp.Weight))
		}
		board, err := performance.Leaderboard(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching leaderboard: %v", err))
		}
		if len(board) == 0 {
			return c.Send("Ledger is empty, no outcomes graded yet")
		}
		var sb strings.Builder
		limit := len(board)
		if limit > 15 {
			limit = 15
		}
		for _, comp := range board[:limit] {
			sb.WriteString(fmt.Sprintf("%-28s w=%.2f acc=%.0f%%\n", comp.ComponentID, comp.Weight, comp.Accuracy*100))
		}
		return c.Send(sb.String())
	})

	b.Handle("/explain", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /explain <decision id>")
		}
		if explainer == nil {
			return c.Send("Explainer unavailable")
		}
		d, err := decisions.GetDecision(context.Background(), args[0])
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching decision: %v", err))
		}
		text, err := explainer.ExplainDecision(context.Background(), d)
		if err != nil {
			return c.Send(fmt.Sprintf("Error explaining decision: %v", err))
		}
		return c.Send(text)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDecision(d *domain.Decision) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s (%s)\nAction: %s | score %.1f %s | conf %.0f\nStatus: %s\n",
		d.ID, d.Ticker, d.SignalType, d.FinalAction, d.CompositeScore, d.CompositeCall, d.Confidence, d.Status))
	for _, v := range d.Verdicts {
		sb.WriteString(fmt.Sprintf("  %s: %.1f %s (w=%.2f)\n", v.DirectorID, v.AggregatedScore, v.Call, v.WeightUsed))
	}
	return sb.String()
}
