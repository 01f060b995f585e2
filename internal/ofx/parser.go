// Package ofx turns OFX/QFX bank and card statements into ledger items.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// ErrNilContext is returned when ParseFile is called without a context.
var ErrNilContext = errors.New("context cannot be nil")

var (
	errNotDebit       = errors.New("not a debit")
	errRoundsToZero   = errors.New("amount rounds to zero")
	errAmountTooLarge = errors.New("amount too large to store")
)

var maxStoredPrice = decimal.NewFromInt(math.MaxInt64)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var purchasePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericNames = map[string]struct{}{
	"DEBIT":           {},
	"CREDIT":          {},
	"PURCHASE":        {},
	"PAYMENT":         {},
	"POS TRANSACTION": {},
	"CARD PURCHASE":   {},
}

// Result is what one statement file yields.
type Result struct {
	Items          []model.NewLineItem
	Accounts       []string
	SkippedCredits int
	// SkippedAmounts counts debits whose stored price would be zero or
	// would not fit in an int64.
	SkippedAmounts int
}

// Parser converts statement transactions into NewLineItems.
// Only debits become items; deposits and refunds are counted and skipped.
type Parser struct {
	logger     *slog.Logger
	minorUnits int32
}

// NewParser creates a parser. minorUnits is how many decimal places of the
// statement amount are kept in the stored integer price: 0 for yen, 2 for
// currencies stored in cents.
func NewParser(minorUnits int32, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if minorUnits < 0 {
		minorUnits = 0
	}
	return &Parser{minorUnits: minorUnits, logger: logger}
}

// ParseFile reads a statement and returns one item per debit, each paid by payer.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, payer *model.Participant) (*Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	result := &Result{Items: []model.NewLineItem{}}
	accounts := make(map[string]struct{})

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		accounts[string(stmt.BankAcctFrom.AcctID)] = struct{}{}
		if stmt.BankTranList != nil {
			p.collect(result, stmt.BankTranList.Transactions, payer)
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		accounts[string(stmt.CCAcctFrom.AcctID)] = struct{}{}
		if stmt.BankTranList != nil {
			p.collect(result, stmt.BankTranList.Transactions, payer)
		}
	}

	for acct := range accounts {
		if acct != "" {
			result.Accounts = append(result.Accounts, acct)
		}
	}
	sort.Strings(result.Accounts)

	p.logger.Info("parsed statement",
		"items", len(result.Items),
		"skipped_credits", result.SkippedCredits,
		"skipped_amounts", result.SkippedAmounts,
		"accounts", len(result.Accounts))

	return result, nil
}

func (p *Parser) collect(result *Result, txns []ofxgo.Transaction, payer *model.Participant) {
	for _, tx := range txns {
		item, err := p.convert(tx, payer)
		switch {
		case errors.Is(err, errNotDebit):
			result.SkippedCredits++
			continue
		case err != nil:
			p.logger.Warn("skipping statement line", "fitid", string(tx.FiTID), "error", err)
			result.SkippedAmounts++
			continue
		}
		if err := item.Validate(); err != nil {
			p.logger.Warn("skipping statement line", "fitid", string(tx.FiTID), "error", err)
			continue
		}
		result.Items = append(result.Items, item)
	}
}

// convert returns errNotDebit for anything that is not money leaving the account.
func (p *Parser) convert(tx ofxgo.Transaction, payer *model.Participant) (model.NewLineItem, error) {
	amount := decimal.NewFromBigRat(&tx.TrnAmt.Rat, 8)
	if !amount.IsNegative() {
		return model.NewLineItem{}, errNotDebit
	}

	price, err := p.toMinorUnits(amount.Abs())
	if err != nil {
		return model.NewLineItem{}, err
	}

	return model.NewLineItem{
		EntryDate:  model.TruncateToDate(tx.DtPosted.Time),
		Payer:      payer,
		Name:       merchantName(tx),
		ExternalID: string(tx.FiTID),
		Price:      price,
	}, nil
}

// toMinorUnits rounds a positive amount half away from zero to stored units.
func (p *Parser) toMinorUnits(amount decimal.Decimal) (int64, error) {
	stored := amount.Shift(p.minorUnits).Round(0)
	if stored.IsZero() {
		return 0, fmt.Errorf("%w: %s", errRoundsToZero, amount)
	}
	if stored.GreaterThan(maxStoredPrice) {
		return 0, fmt.Errorf("%w: %s", errAmountTooLarge, amount)
	}
	return stored.IntPart(), nil
}

// preprocess repairs formatting quirks seen in real bank exports.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagPattern.ReplaceAllString(content, "$1>")
}

func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if _, generic := genericNames[strings.ToUpper(name)]; generic && tx.Memo != "" {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range purchasePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " left over from authorization prefixes
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}
