// Package importer turns bank statement exports into transactions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
)

// Row is one statement line. Amount is signed: positive money in, negative
// money out.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
	CategoryID  string // optional hint from the export
}

// Parser converts a statement export into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names in order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&GenericParser{})
	return r
}

// Mapping says where imported rows land in the wallet.
type Mapping struct {
	AccountID         string
	IncomeCategoryID  string
	ExpenseCategoryID string
}

// DefaultMapping books rows against accountID using the seeded catch-all
// categories.
func DefaultMapping(accountID string) Mapping {
	return Mapping{AccountID: accountID, IncomeCategoryID: "other-income", ExpenseCategoryID: "other-expense"}
}

// Inputs converts rows into ledger transaction inputs. Positive rows become
// income, negative rows expenses; zero rows are skipped. A row's own category
// hint wins over the mapping.
func Inputs(rows []Row, m Mapping) []ledger.TransactionInput {
	var out []ledger.TransactionInput
	for _, row := range rows {
		if row.Amount.IsZero() {
			continue
		}
		in := ledger.TransactionInput{
			AccountID:   m.AccountID,
			Amount:      row.Amount.Abs(),
			Description: row.Description,
			Date:        row.Date,
			Reference:   row.Reference,
		}
		if row.Amount.IsPositive() {
			in.Type = model.TransactionTypeIncome
			in.CategoryID = m.IncomeCategoryID
		} else {
			in.Type = model.TransactionTypeExpense
			in.CategoryID = m.ExpenseCategoryID
		}
		if row.CategoryID != "" {
			in.CategoryID = row.CategoryID
		}
		out = append(out, in)
	}
	return out
}

// SkipBooked drops rows whose reference already appears on a transaction of
// the given account. Rows without a reference are always kept.
func SkipBooked(rows []Row, accountID string, booked []model.Transaction) []Row {
	seen := make(map[string]bool)
	for _, t := range booked {
		if t.AccountID == accountID && t.Reference != "" {
			seen[t.Reference] = true
		}
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Reference != "" && seen[row.Reference] {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FileInfo describes a CSV file waiting in the inbox.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// inboxDir is the data-directory subdirectory scanned for statements.
const inboxDir = "import"

// processedDir receives statements once imported.
const processedDir = "import/processed"

// Scan returns CSV files in <dataDir>/import/.
func Scan(dataDir string) ([]FileInfo, error) {
	dir := filepath.Join(dataDir, inboxDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Size: info.Size()})
	}
	return files, nil
}

// MarkProcessed moves an imported file into import/processed/ so the next
// scan skips it.
func MarkProcessed(dataDir, fileName string) error {
	dstDir := filepath.Join(dataDir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	src := filepath.Join(dataDir, inboxDir, fileName)
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
