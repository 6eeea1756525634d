package ledger

import (
	"time"

	"github.com/latlat/ledger/internal/domain"
)

// Fixed audit-trail descriptions. The continuation fee text differs from the
// creation one so first and subsequent rounds can be told apart in the log.
const (
	descInitialFee  = "Initial game fee"
	descNewRoundFee = "New round initial fee"
	descWonBet      = "Won bet"
	descLostBet     = "Lost bet"
)

// PlayerEntry is a joining player: name plus the budget they bring in,
// before any fee is charged.
type PlayerEntry struct {
	Name   string
	Budget float64
}

// enrollPlayers charges the entry fee against each joining player and keeps
// the pre-deduction budget as the audit value.
func enrollPlayers(entries []PlayerEntry, fee float64) []domain.Player {
	players := make([]domain.Player, len(entries))
	for i, e := range entries {
		players[i] = domain.Player{
			Name:          e.Name,
			Budget:        e.Budget - fee,
			InitialBudget: e.Budget,
		}
	}

	return players
}

// deductFee charges a new round's fee against an existing player list.
// Unlike enrollPlayers it leaves InitialBudget exactly as supplied.
func deductFee(players []domain.Player, fee float64) []domain.Player {
	out := make([]domain.Player, len(players))
	for i, p := range players {
		p.Budget -= fee
		out[i] = p
	}

	return out
}

// feeTransactions builds one INITIAL_FEE log entry per named player.
func feeTransactions(names []string, fee float64, description string, now time.Time) []domain.Transaction {
	txns := make([]domain.Transaction, len(names))
	for i, name := range names {
		txns[i] = domain.Transaction{
			PlayerName:  name,
			Amount:      -fee,
			Type:        domain.TxTypeInitialFee,
			Timestamp:   now,
			Description: description,
		}
	}

	return txns
}

// betTransaction classifies a bet by its sign. The comparison is strictly
// amount > 0, so a zero amount is recorded as a LOSS.
func betTransaction(playerName string, amount float64, now time.Time) domain.Transaction {
	txn := domain.Transaction{
		PlayerName:  playerName,
		Amount:      amount,
		Type:        domain.TxTypeLoss,
		Timestamp:   now,
		Description: descLostBet,
	}
	if amount > 0 {
		txn.Type = domain.TxTypeWin
		txn.Description = descWonBet
	}

	return txn
}

func playerNames(players []domain.Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	return names
}
