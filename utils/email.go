// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/gestioncomercial/gestion_backend/models"
)

// SendSettlementEmail mails a settlement summary to the salesperson. When
// SMTP is not configured the send is skipped with a log line, so settling
// never fails on a missing mail server.
func SendSettlementEmail(toEmail, toName string, settlement models.Settlement) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		log.Printf("SMTP_HOST not set, skipping settlement email for receipt %s", settlement.ReceiptNumber)
		return nil
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			smtpPort = port
		}
	}
	smtpUser := os.Getenv("SMTP_USER")
	smtpPassword := os.Getenv("SMTP_PASSWORD")

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	subject := fmt.Sprintf("Commission settlement %s", settlement.ReceiptNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour commission settlement %s has been issued on %s.\n\n"+
			"Base: %.2f\nCommission (%.2f%%): %.2f\nAdvances: %.2f\nCash in hand: %.2f\nOther deductions: %.2f\n\nNet payable: %.2f\n\nRegards",
		toName,
		settlement.ReceiptNumber,
		settlement.IssuedAt.Format("2006-01-02"),
		settlement.Base,
		settlement.Percentage,
		settlement.GrossCommission,
		settlement.Advances,
		settlement.CashInHand,
		settlement.OtherDeductions,
		settlement.NetPayable,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send settlement email: %w", err)
	}
	return nil
}
