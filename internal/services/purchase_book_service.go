package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// Placeholders used when a purchase row lacks a counter line, company or item.
const (
	UnknownLabel     = "不明"
	UnknownItemLabel = "不明商品"
)

// PurchaseBookConfig names the accounts the purchase book reads.
type PurchaseBookConfig struct {
	PurchaseAccount string
	PayableAccount  string
	CashAccount     string
}

// purchaseBookService lists purchases and purchase returns by month.
type purchaseBookService struct {
	repo repository.LedgerRepository
	cfg  PurchaseBookConfig
	log  *zap.SugaredLogger
}

// NewPurchaseBookService creates a new PurchaseBookServicer.
func NewPurchaseBookService(repo repository.LedgerRepository, cfg PurchaseBookConfig) PurchaseBookServicer {
	return &purchaseBookService{repo: repo, cfg: cfg, log: logger.Named("purchasebook")}
}

// PurchaseBook lists the month's entries on the purchases account. A debit
// on the account is a purchase, a credit is a return or allowance. Item
// details that do not add up to the entry amount produce a warning, not an
// error.
func (s *purchaseBookService) PurchaseBook(ym period.YearMonth) (*PurchaseBook, error) {
	if !ym.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	account, err := s.repo.AccountByName(s.cfg.PurchaseAccount)
	if err != nil {
		return nil, err
	}

	r := period.MonthRange(ym)
	entries, err := s.repo.Entries(repository.EntryQuery{
		AccountID:   account.ID,
		From:        &r.Start,
		To:          &r.End,
		WithDetails: true,
	})
	if err != nil {
		return nil, err
	}

	book := &PurchaseBook{
		Year:          ym.Year,
		Month:         ym.Month,
		Rows:          []PurchaseBookRow{},
		TotalPurchase: decimal.Zero,
		TotalReturns:  decimal.Zero,
		Warnings:      []string{},
	}

	for i := range entries {
		entry := &entries[i]
		split := splitEntry(entry, account.ID)

		row := PurchaseBookRow{
			EntryID:     entry.ID,
			Date:        entry.Date,
			CompanyName: UnknownLabel,
			Counter:     UnknownLabel,
			Lines:       []PurchaseBookLine{},
		}
		if entry.Company != nil {
			row.CompanyName = entry.Company.Name
		}

		if len(split.targetDebits) > 0 {
			row.Amount = split.debitSum()
			if len(entry.Credits) > 0 {
				row.Counter = entry.Credits[0].Account.Name
			}
			book.TotalPurchase = book.TotalPurchase.Add(row.Amount)
		} else {
			row.IsReturn = true
			row.Amount = split.creditSum()
			if len(entry.Debits) > 0 {
				row.Counter = entry.Debits[0].Account.Name
			}
			book.TotalReturns = book.TotalReturns.Add(row.Amount)
		}
		row.Summary = s.summary(row)

		detailTotal := decimal.Zero
		for _, d := range entry.PurchaseDetails {
			name := UnknownItemLabel
			if d.Item != nil {
				name = d.Item.Name
			}
			amount := d.Amount()
			row.Lines = append(row.Lines, PurchaseBookLine{
				ItemName:  name,
				Quantity:  d.Quantity,
				UnitPrice: d.UnitPrice,
				Amount:    amount,
			})
			detailTotal = detailTotal.Add(amount)
		}
		if len(row.Lines) > 0 && !detailTotal.RoundBank(0).Equal(row.Amount.RoundBank(0)) {
			s.log.Warnw("purchase details do not match entry amount",
				"entry_id", entry.ID, "detail_total", detailTotal.StringFixed(2), "amount", row.Amount.StringFixed(2))
			book.Warnings = append(book.Warnings,
				fmt.Sprintf("entry %s: item total %s does not match amount %s",
					entry.ID, detailTotal.StringFixed(2), row.Amount.StringFixed(2)))
		}

		book.Rows = append(book.Rows, row)
	}

	book.NetPurchase = book.TotalPurchase.Sub(book.TotalReturns)
	return book, nil
}

func (s *purchaseBookService) summary(row PurchaseBookRow) string {
	var how string
	switch {
	case row.IsReturn && row.Counter == s.cfg.PayableAccount:
		how = "掛戻し"
	case row.IsReturn:
		how = "（" + row.Counter + "戻）"
	case row.Counter == s.cfg.PayableAccount:
		how = "掛"
	case row.Counter == s.cfg.CashAccount:
		how = "現金払"
	default:
		how = "（" + row.Counter + "）"
	}
	return row.CompanyName + " " + how
}
