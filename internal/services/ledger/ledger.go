package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
)

// recentLimit caps the recent-sessions listing.
const recentLimit = 2

// Service owns the session ledger lifecycle. Every operation is one payload
// transformation followed by exactly one store call; consistency relies on
// the store applying each call atomically.
type Service struct {
	sessions sessions.Sessions
}

func New(repo sessions.Sessions) *Service {
	return &Service{sessions: repo}
}

type CreateSessionParams struct {
	SessionCode string
	InitialFee  float64
	Players     []PlayerEntry
}

// CreateSession builds and stores a new active session: each player is
// charged the entry fee (pre-deduction budget kept as InitialBudget), the
// bank starts at fee x player count, and the log opens with one INITIAL_FEE
// transaction per player.
func (s *Service) CreateSession(ctx context.Context, p CreateSessionParams) (*domain.Session, string, error) {
	now := time.Now().UTC()

	names := make([]string, len(p.Players))
	for i, e := range p.Players {
		names[i] = e.Name
	}

	doc := &domain.Session{
		SessionCode:  p.SessionCode,
		InitialFee:   p.InitialFee,
		Players:      enrollPlayers(p.Players, p.InitialFee),
		BankBalance:  p.InitialFee * float64(len(p.Players)),
		Transactions: feeTransactions(names, p.InitialFee, descInitialFee, now),
		CreatedAt:    now,
		Status:       domain.StatusActive,
		Game:         domain.Game,
	}

	id, err := s.sessions.Insert(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return doc, id, nil
}

func (s *Service) GetSession(ctx context.Context, code string) (*domain.Session, error) {
	doc, err := s.sessions.Get(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return doc, nil
}

// PlaceBet applies amount to the named player's budget and bankChange to the
// bank. The bank delta is fully caller-supplied; the service never derives it
// from the bet amount.
func (s *Service) PlaceBet(ctx context.Context, code, playerName string, amount, bankChange float64) error {
	txn := betTransaction(playerName, amount, time.Now().UTC())

	err := s.sessions.PlaceBet(ctx, code, txn, bankChange)
	if err != nil {
		return fmt.Errorf("place bet: %w", err)
	}

	return nil
}

type ContinueRoundParams struct {
	InitialFee  float64
	BankBalance float64
	Players     []domain.Player
}

// ContinueRound starts a new fee cycle: the supplied player list (budgets
// pre-deduction) replaces the stored one with the new fee charged, the bank
// is set to the caller-supplied value, and the log grows by one INITIAL_FEE
// entry per player.
func (s *Service) ContinueRound(ctx context.Context, code string, p ContinueRoundParams) error {
	now := time.Now().UTC()

	players := deductFee(p.Players, p.InitialFee)
	fees := feeTransactions(playerNames(p.Players), p.InitialFee, descNewRoundFee, now)

	err := s.sessions.ContinueRound(ctx, code, p.InitialFee, p.BankBalance, players, fees)
	if err != nil {
		return fmt.Errorf("continue round: %w", err)
	}

	return nil
}

func (s *Service) EndSession(ctx context.Context, code string) error {
	err := s.sessions.End(ctx, code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	return nil
}

func (s *Service) RecentSessions(ctx context.Context) ([]domain.Session, error) {
	out, err := s.sessions.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}

	return out, nil
}

func (s *Service) CheckStore(ctx context.Context) (*domain.StoreStats, error) {
	stats, err := s.sessions.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}

	return stats, nil
}
