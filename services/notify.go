package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"chipbook/database"
	"chipbook/helpers"
	"chipbook/models"
)

// playerMessage is the payload pushed to the chat relay. The relay answers
// with a reference to the message it posted, which we keep on the debt so the
// notice can be edited or removed later.
type playerMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func postWebhook(url string, msg playerMessage) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook returned %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Ref string `json:"ref"`
	}
	_ = json.Unmarshal(raw, &out)
	return out.Ref, nil
}

// NotifyPlayer sends a direct message to one player, best-effort.
func NotifyPlayer(userID int64, text string) (string, error) {
	url := os.Getenv("PLAYER_WEBHOOK_URL")
	if url == "" {
		return "", nil
	}
	return postWebhook(url, playerMessage{ChatID: userID, Text: text})
}

// NotifyOperator sends a message to the operator channel, best-effort.
// Failures are logged and swallowed: there is no one left to tell.
func NotifyOperator(text string) {
	url := os.Getenv("OPERATOR_WEBHOOK_URL")
	if url == "" {
		return
	}
	if _, err := postWebhook(url, playerMessage{Text: text}); err != nil {
		slog.Error("operator notification failed", "error", err)
	}
}

// NotifySettlement fans out debt notices and the group report after a game
// was finalized. Every dispatch is best-effort: failures are logged and
// reported to the operator, never unwound into the committed settlement.
func NotifySettlement(res *FinalizeResult) {
	var failed int
	for i := range res.Debts {
		if err := notifyDebt(&res.Debts[i], res.Game.Ratio); err != nil {
			failed++
			slog.Error("debt notification failed",
				"debt_id", res.Debts[i].ID,
				"game_id", res.Game.ID,
				"error", err,
			)
		}
	}
	if failed > 0 {
		NotifyOperator(fmt.Sprintf(
			"Game %02d: %d of %d debt notifications failed, players may need a manual ping.",
			res.Game.ID, failed, len(res.Debts),
		))
	}

	NotifyOperator(groupReportText(res))
}

func notifyDebt(debt *models.Debt, ratio int64) error {
	var creditor, debtor models.User
	if err := database.DB.First(&creditor, "id = ?", debt.CreditorID).Error; err != nil {
		return err
	}
	if err := database.DB.First(&debtor, "id = ?", debt.DebtorID).Error; err != nil {
		return err
	}

	amount := helpers.DisplayAmount(debt.Amount, ratio)

	debtorText := fmt.Sprintf(
		"Game %02d, debt #%d: you owe %s to %s.",
		debt.GameID, debt.ID, amount, creditor.Handle(),
	)
	if creditor.HasRequisites() {
		debtorText += fmt.Sprintf(
			"\nBank: %s\nIBAN: %s\nName: %s",
			*creditor.Bank, *creditor.IBAN, *creditor.NameSurname,
		)
	}

	ref, err := NotifyPlayer(debtor.ID, debtorText)
	if err != nil {
		return err
	}
	if ref != "" {
		err := database.DB.Model(&models.Debt{}).
			Where("id = ?", debt.ID).
			Update("notice_ref", ref).Error
		if err != nil {
			slog.Error("failed to store notice ref", "debt_id", debt.ID, "error", err)
		}
	}

	creditorText := fmt.Sprintf(
		"Game %02d, debt #%d: %s owes you %s.",
		debt.GameID, debt.ID, debtor.Handle(), amount,
	)
	_, err = NotifyPlayer(creditor.ID, creditorText)
	return err
}

func groupReportText(res *FinalizeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %02d finished. Pot: %s.",
		res.Game.ID, helpers.DisplayAmount(res.Game.TotalPot, res.Game.Ratio))
	if res.MvpROI != nil {
		fmt.Fprintf(&b, " MVP: %s (ROI %.2f%%).", res.MVP.Fullname, *res.MvpROI)
	} else {
		fmt.Fprintf(&b, " MVP: %s.", res.MVP.Fullname)
	}
	fmt.Fprintf(&b, " Transfers: %d.", len(res.Debts))
	return b.String()
}
