package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

var twelve = decimal.NewFromInt(12)

// AdjustmentConfig names the accounts the allowance calculation reads.
type AdjustmentConfig struct {
	ReceivableAccounts []string
	AllowanceAccount   string
	AllowanceRate      decimal.Decimal
}

// adjustmentService computes year-end depreciation and allowance figures.
type adjustmentService struct {
	repo repository.LedgerRepository
	cfg  AdjustmentConfig
}

// NewAdjustmentService creates a new AdjustmentServicer.
func NewAdjustmentService(repo repository.LedgerRepository, cfg AdjustmentConfig) AdjustmentServicer {
	return &adjustmentService{repo: repo, cfg: cfg}
}

// CalculateDepreciation computes straight-line depreciation for every
// active asset acquired by the end of the period. Assets already recorded
// for the period report their recorded amount.
func (s *adjustmentService) CalculateDepreciation(periodID string, companyID *string) (*DepreciationSummary, error) {
	return calculateDepreciation(s.repo, periodID, companyID)
}

// RecordDepreciation writes one history row, linked to journalEntryID, for
// every asset not yet recorded for the period. It returns the number of
// rows created; a second call creates none.
func (s *adjustmentService) RecordDepreciation(periodID, journalEntryID string, companyID *string) (int, error) {
	if journalEntryID == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "journal entry id is required")
	}

	created := 0
	err := s.repo.Transaction(func(tx repository.LedgerRepository) error {
		if _, err := tx.JournalEntry(journalEntryID); err != nil {
			return err
		}
		n, err := recordDepreciation(tx, periodID, journalEntryID, companyID)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// recordDepreciation must run inside a transaction.
func recordDepreciation(repo repository.LedgerRepository, periodID, journalEntryID string, companyID *string) (int, error) {
	summary, err := calculateDepreciation(repo, periodID, companyID)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, line := range summary.Assets {
		if line.AlreadyRecorded {
			continue
		}
		entryID := journalEntryID
		h := &models.DepreciationHistory{
			FixedAssetID:   line.AssetID,
			FiscalPeriodID: periodID,
			JournalEntryID: &entryID,
			Amount:         line.CurrentPeriodDepreciation,
		}
		if err := repo.CreateDepreciation(h); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func calculateDepreciation(repo repository.LedgerRepository, periodID string, companyID *string) (*DepreciationSummary, error) {
	fp, err := repo.FiscalPeriod(periodID)
	if err != nil {
		return nil, err
	}
	assets, err := repo.ActiveFixedAssets(fp.EndDate, companyID)
	if err != nil {
		return nil, err
	}

	summary := &DepreciationSummary{
		Assets:            make([]DepreciationLine, 0, len(assets)),
		TotalDepreciation: decimal.Zero,
	}
	for i := range assets {
		asset := &assets[i]
		existing, err := repo.DepreciationFor(asset.ID, fp.ID)
		if err != nil {
			return nil, err
		}

		annual := AnnualDepreciation(asset)
		months := MonthsInPeriod(asset, fp)

		var current decimal.Decimal
		if existing != nil {
			current = existing.Amount
		} else {
			current = annual.Mul(decimal.NewFromInt(int64(months))).Div(twelve).RoundBank(2)
			summary.HasUnrecorded = true
		}

		accumulated, err := repo.DepreciationThrough(asset.ID, fp.EndDate)
		if err != nil {
			return nil, err
		}
		withCurrent := accumulated
		if existing == nil {
			withCurrent = accumulated.Add(current)
		}

		summary.Assets = append(summary.Assets, DepreciationLine{
			AssetID:                   asset.ID,
			AssetNumber:               asset.AssetNumber,
			AssetName:                 asset.Name,
			AccountName:               asset.Account.Name,
			AcquisitionDate:           asset.AcquisitionDate,
			AcquisitionCost:           asset.AcquisitionCost,
			UsefulLife:                asset.UsefulLife,
			DepreciationMethod:        string(asset.DepreciationMethod),
			AnnualDepreciation:        annual,
			MonthlyDepreciation:       annual.Div(twelve).RoundBank(2),
			MonthsInPeriod:            months,
			CurrentPeriodDepreciation: current,
			AccumulatedDepreciation:   accumulated,
			AccumulatedWithCurrent:    withCurrent,
			BookValue:                 asset.AcquisitionCost.Sub(withCurrent),
			AlreadyRecorded:           existing != nil,
		})
		summary.TotalDepreciation = summary.TotalDepreciation.Add(current)
	}
	return summary, nil
}

// AnnualDepreciation is (cost - residual value) / useful life. An asset
// without a useful life does not depreciate.
func AnnualDepreciation(asset *models.FixedAsset) decimal.Decimal {
	if asset.UsefulLife <= 0 {
		return decimal.Zero
	}
	return asset.AcquisitionCost.Sub(asset.ResidualValue).Div(decimal.NewFromInt(int64(asset.UsefulLife)))
}

// MonthsInPeriod counts the months of the period the asset was held,
// starting from the later of acquisition and period start, capped at the
// period length.
func MonthsInPeriod(asset *models.FixedAsset, fp *models.FiscalPeriod) int {
	start := fp.StartDate
	if asset.AcquisitionDate.After(start) {
		start = asset.AcquisitionDate
	}
	months := period.MonthsBetween(start, fp.EndDate)
	if limit := fp.MonthCount(); months > limit {
		months = limit
	}
	if months < 0 {
		months = 0
	}
	return months
}

// CalculateAllowance computes the allowance for doubtful accounts due at
// the end of the period from the positive balances of the receivable
// accounts.
func (s *adjustmentService) CalculateAllowance(periodID string, companyID *string) (*AllowanceCalculation, error) {
	fp, err := s.repo.FiscalPeriod(periodID)
	if err != nil {
		return nil, err
	}
	balances := NewBalanceService(s.repo)

	accounts, err := s.repo.AccountsByNames(s.cfg.ReceivableAccounts)
	if err != nil {
		return nil, err
	}

	calc := &AllowanceCalculation{
		Receivables:       []ReceivableBalance{},
		TotalReceivables:  decimal.Zero,
		AllowanceRate:     s.cfg.AllowanceRate,
		PreviousAllowance: decimal.Zero,
	}
	for i := range accounts {
		account := &accounts[i]
		if account.Type != accounting.Asset {
			continue
		}
		balance, err := balances.BalanceAsOf(account, fp.EndDate, companyID)
		if err != nil {
			return nil, err
		}
		if !balance.IsPositive() {
			continue
		}
		calc.Receivables = append(calc.Receivables, ReceivableBalance{AccountName: account.Name, Balance: balance})
		calc.TotalReceivables = calc.TotalReceivables.Add(balance)
	}

	calc.RequiredAllowance = calc.TotalReceivables.Mul(s.cfg.AllowanceRate).RoundBank(2)

	allowance, err := s.repo.AccountByName(s.cfg.AllowanceAccount)
	switch {
	case err == nil:
		calc.PreviousAllowance, err = balances.BalanceAsOf(allowance, fp.EndDate, companyID)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrAccountNotFound):
		// No allowance account yet; nothing has been provided before.
	default:
		return nil, err
	}

	diff := calc.RequiredAllowance.Sub(calc.PreviousAllowance)
	calc.IsReversal = diff.IsNegative()
	calc.EntryAmount = diff.Abs()
	return calc, nil
}

// AdjustmentInfo bundles depreciation and allowance for a period.
func (s *adjustmentService) AdjustmentInfo(periodID string, companyID *string) (*AdjustmentInfo, error) {
	fp, err := s.repo.FiscalPeriod(periodID)
	if err != nil {
		return nil, err
	}
	depreciation, err := s.CalculateDepreciation(periodID, companyID)
	if err != nil {
		return nil, err
	}
	allowance, err := s.CalculateAllowance(periodID, companyID)
	if err != nil {
		return nil, err
	}
	return &AdjustmentInfo{FiscalPeriod: *fp, Depreciation: depreciation, Allowance: allowance}, nil
}
