package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"
)

type staleDebt struct {
	models.Debt
	Ratio        int64
	DebtorName   string
	CreditorName string
}

// ReportStaleDebts finds debts still open after maxAge and sends the operator
// a summary. A debt is open when the paid flag is unset OR no payment time
// was ever stamped; both conditions gate independently.
func ReportStaleDebts(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	var stale []staleDebt
	err := database.DB.Model(&models.Debt{}).
		Select("debts.*, games.ratio AS ratio, debtors.fullname AS debtor_name, creditors.fullname AS creditor_name").
		Joins("JOIN games ON games.id = debts.game_id").
		Joins("JOIN users AS debtors ON debtors.id = debts.debtor_id").
		Joins("JOIN users AS creditors ON creditors.id = debts.creditor_id").
		Where("(debts.is_paid = ? OR debts.paid_at IS NULL)", false).
		Where("debts.created_at < ?", cutoff).
		Order("debts.created_at ASC").
		Scan(&stale).Error
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d debt(s) open for more than %d day(s):\n",
		len(stale), int(maxAge.Hours()/24))
	for _, d := range stale {
		fmt.Fprintf(&b, "- Game %02d, debt #%d: %s owes %s to %s (since %s)\n",
			d.GameID, d.Debt.ID,
			d.DebtorName,
			helpers.DisplayAmount(d.Amount, d.Ratio),
			d.CreditorName,
			d.Debt.CreatedAt.In(OperatorTZ()).Format("02.01.2006"),
		)
	}
	NotifyOperator(b.String())

	slog.Info("stale debt report sent", "count", len(stale))
	return nil
}
