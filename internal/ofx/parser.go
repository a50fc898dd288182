// Package ofx converts OFX/QFX bank and card statements into ledger entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Payment methods assigned to imported entries.
const (
	PaymentBank   = "bank"
	PaymentCard   = "card"
	PaymentCheque = "cheque"
	PaymentCash   = "cash"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags on their own line that are missing the closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in bank exports.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its transactions as ledger
// entries. Debits become OUT entries and credits become IN entries.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.LedgerEntry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []model.LedgerEntry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(tx, PaymentBank))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(tx, PaymentCard))
			}
		}
	}

	slog.Debug("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// convertTransaction converts an OFX transaction to a ledger entry.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, method string) model.LedgerEntry {
	// OFX signs amounts: negative is money leaving the account.
	amount, _ := tx.TrnAmt.Float64()
	direction := model.DirectionIn
	if amount < 0 {
		direction = model.DirectionOut
		amount = -amount
	}

	trnType := fmt.Sprintf("%v", tx.TrnType)
	posted := tx.DtPosted.Time

	entry := model.LedgerEntry{
		ID:            string(tx.FiTID),
		Date:          time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC),
		Amount:        amount,
		Direction:     direction,
		Category:      categoryHint(trnType),
		Description:   p.extractMerchantName(tx),
		PaymentMethod: method,
	}
	switch trnType {
	case "CHECK":
		entry.PaymentMethod = PaymentCheque
	case "ATM", "CASH":
		entry.PaymentMethod = PaymentCash
	}
	if posted.IsZero() {
		entry.Date = time.Time{}
	}

	entry.Hash = entry.GenerateHash()
	return entry
}

// categoryHint infers a category from the OFX transaction type. OFX carries
// no merchant categories, so most entries stay uncategorized.
func categoryHint(trnType string) string {
	switch trnType {
	case "FEE", "SRVCHG":
		return "Bank Fees"
	case "INT", "DIV":
		return "Interest"
	case "ATM":
		return "Cash"
	default:
		return ""
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"ACH CREDIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date stamp
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "DEPOSIT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
