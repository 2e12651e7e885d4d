package services

import (
	"testing"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/testutil"
)

func line(account *models.Account, amount string) LineInput {
	return LineInput{AccountID: account.ID, Amount: amount}
}

func TestCreateJournalEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Summary: "cash sale",
			Debits:  []LineInput{line(cash, "1000")},
			Credits: []LineInput{line(sales, "1000")},
			Actor:   "alice",
		})
		testutil.AssertNoError(t, err)

		if entry.ID == "" {
			t.Fatal("expected entry ID")
		}
		if entry.EntryType != models.EntryTypeNormal {
			t.Errorf("expected entry type normal, got %s", entry.EntryType)
		}
		if len(entry.Debits) != 1 || len(entry.Credits) != 1 {
			t.Fatalf("expected 1 debit and 1 credit, got %d and %d", len(entry.Debits), len(entry.Credits))
		}
		if entry.Debits[0].Account.Name != "現金" {
			t.Errorf("expected debit account 現金, got %s", entry.Debits[0].Account.Name)
		}
		testutil.AssertDecimal(t, entry.DebitTotal(), "1000", "debit total")
		if entry.CreatedBy != "alice" {
			t.Errorf("expected created_by alice, got %s", entry.CreatedBy)
		}
	})

	t.Run("multi_line", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		receivable := testutil.CreateTestAccount(t, db, "売掛金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "100"), line(receivable, "50.50")},
			Credits: []LineInput{line(sales, "150.50")},
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, entry.CreditTotal(), "150.50", "credit total")
	})

	t.Run("blank_lines_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "100"), {}},
			Credits: []LineInput{{}, line(sales, "100")},
		})
		testutil.AssertNoError(t, err)
		if len(entry.Debits) != 1 || len(entry.Credits) != 1 {
			t.Errorf("expected blank lines to be skipped, got %d debits and %d credits", len(entry.Debits), len(entry.Credits))
		}
	})

	t.Run("unbalanced_writes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "1000")},
			Credits: []LineInput{line(sales, "900")},
		})
		testutil.AssertAppError(t, err, "UNBALANCED_ENTRY")

		for _, model := range []interface{}{&models.JournalEntry{}, &models.Debit{}, &models.Credit{}} {
			var count int64
			db.Model(model).Count(&count)
			if count != 0 {
				t.Errorf("expected no rows in %T, got %d", model, count)
			}
		}
	})

	t.Run("incomplete_line", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "100"), {AccountID: cash.ID}},
			Credits: []LineInput{line(sales, "100")},
		})
		testutil.AssertAppError(t, err, "INCOMPLETE_LINE")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		for _, amount := range []string{"0", "-100"} {
			_, err := svc.CreateJournalEntry(JournalEntryInput{
				Date:    testutil.Day(2025, 5, 10),
				Debits:  []LineInput{line(cash, amount)},
				Credits: []LineInput{line(sales, amount)},
			})
			testutil.AssertAppError(t, err, "NON_POSITIVE_AMOUNT")
		}
	})

	t.Run("too_many_decimals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "10.005")},
			Credits: []LineInput{line(sales, "10.005")},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:   testutil.Day(2025, 5, 10),
			Debits: []LineInput{line(cash, "100")},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Debits:  []LineInput{line(cash, "100")},
			Credits: []LineInput{line(sales, "100")},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "100")},
			Credits: []LineInput{{AccountID: "0190a1b2-0000-7000-8000-000000000000", Amount: "100"}},
		})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("unknown_company", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		missing := "0190a1b2-0000-7000-8000-000000000001"

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:      testutil.Day(2025, 5, 10),
			CompanyID: &missing,
			Debits:    []LineInput{line(cash, "100")},
			Credits:   []LineInput{line(sales, "100")},
		})
		testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")
	})

	t.Run("adjustment_only_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		accumulated := testutil.CreateTestAccount(t, db, "減価償却累計額", accounting.Asset)
		db.Model(accumulated).Update("is_adjustment_only", true)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "100")},
			Credits: []LineInput{line(accumulated, "100")},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("with_purchase_details", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		purchases := testutil.CreateTestAccount(t, db, "仕入", accounting.Expense)
		payable := testutil.CreateTestAccount(t, db, "買掛金", accounting.Liability)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(purchases, "3000")},
			Credits: []LineInput{line(payable, "3000")},
			PurchaseDetails: []PurchaseDetailInput{
				{ItemName: "Widget", Quantity: "10", UnitPrice: "200"},
				{ItemName: "Gadget", Quantity: "2", UnitPrice: "500"},
			},
		})
		testutil.AssertNoError(t, err)

		if len(entry.PurchaseDetails) != 2 {
			t.Fatalf("expected 2 purchase details, got %d", len(entry.PurchaseDetails))
		}
		if entry.PurchaseDetails[0].Item == nil || entry.PurchaseDetails[0].Item.Name != "Widget" {
			t.Errorf("expected first item Widget, got %+v", entry.PurchaseDetails[0].Item)
		}
		testutil.AssertDecimal(t, entry.PurchaseDetails[0].Amount(), "2000", "detail amount")
	})

	t.Run("registers_fixed_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 10, 1),
			Debits:  []LineInput{line(equipment, "1200000")},
			Credits: []LineInput{line(cash, "1200000")},
			FixedAsset: &FixedAssetInput{
				AssetNumber: "FA-001",
				Name:        "Server",
				AccountID:   equipment.ID,
				UsefulLife:  4,
			},
		})
		testutil.AssertNoError(t, err)

		var asset models.FixedAsset
		if err := db.Where("asset_number = ?", "FA-001").First(&asset).Error; err != nil {
			t.Fatalf("expected fixed asset to be registered: %v", err)
		}
		testutil.AssertDecimal(t, asset.AcquisitionCost, "1200000", "acquisition cost")
		if !asset.AcquisitionDate.Equal(testutil.Day(2025, 10, 1)) {
			t.Errorf("expected acquisition date 2025-10-01, got %s", asset.AcquisitionDate)
		}
		if asset.AcquisitionJournalEntryID == nil || *asset.AcquisitionJournalEntryID != entry.ID {
			t.Errorf("expected asset linked to entry %s", entry.ID)
		}
		if asset.DepreciationMethod != models.DepreciationStraightLine {
			t.Errorf("expected straight_line, got %s", asset.DepreciationMethod)
		}
	})

	t.Run("fixed_asset_without_debit_on_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		supplies := testutil.CreateTestAccount(t, db, "消耗品費", accounting.Expense)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 10, 1),
			Debits:  []LineInput{line(supplies, "5000")},
			Credits: []LineInput{line(cash, "5000")},
			FixedAsset: &FixedAssetInput{
				AssetNumber: "FA-002",
				Name:        "Desk",
				AccountID:   equipment.ID,
				UsefulLife:  8,
			},
		})
		testutil.AssertAppError(t, err, "FIXED_ASSET_INVALID")

		var count int64
		db.Model(&models.JournalEntry{}).Count(&count)
		if count != 0 {
			t.Errorf("expected the entry to be rolled back, got %d entries", count)
		}
	})

	t.Run("duplicate_asset_number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		existing := testutil.CreateTestFixedAsset(t, db, equipment.ID, "1000", testutil.Day(2024, 1, 1), 5, "0")

		_, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 10, 1),
			Debits:  []LineInput{line(equipment, "5000")},
			Credits: []LineInput{line(cash, "5000")},
			FixedAsset: &FixedAssetInput{
				AssetNumber: existing.AssetNumber,
				Name:        "Desk",
				AccountID:   equipment.ID,
				UsefulLife:  8,
			},
		})
		testutil.AssertAppError(t, err, "DUPLICATE_ASSET_NUMBER")
	})
}

func TestCreateAdjustmentEntry(t *testing.T) {
	t.Run("dated_on_period_end", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2025, 4, 1), testutil.Day(2026, 3, 31))

		entry, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			Date:           testutil.Day(2025, 6, 15),
			FiscalPeriodID: &fp.ID,
			Debits:         []LineInput{line(depreciation, "150000")},
			Credits:        []LineInput{line(equipment, "150000")},
		})
		testutil.AssertNoError(t, err)

		if entry.EntryType != models.EntryTypeAdjustment {
			t.Errorf("expected entry type adjustment, got %s", entry.EntryType)
		}
		if !entry.Date.Equal(testutil.Day(2026, 3, 31)) {
			t.Errorf("expected date 2026-03-31, got %s", entry.Date)
		}
		if entry.FiscalPeriodID == nil || *entry.FiscalPeriodID != fp.ID {
			t.Error("expected entry linked to the fiscal period")
		}
	})

	t.Run("adjustment_type_routes_through_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2025, 4, 1), testutil.Day(2026, 3, 31))

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			EntryType:      models.EntryTypeAdjustment,
			FiscalPeriodID: &fp.ID,
			Debits:         []LineInput{line(depreciation, "100")},
			Credits:        []LineInput{line(equipment, "100")},
		})
		testutil.AssertNoError(t, err)
		if !entry.Date.Equal(fp.EndDate) {
			t.Errorf("expected date %s, got %s", fp.EndDate, entry.Date)
		}
	})

	t.Run("requires_fiscal_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)

		_, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			Debits:  []LineInput{line(depreciation, "100")},
			Credits: []LineInput{line(equipment, "100")},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("closed_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2024, 4, 1), testutil.Day(2025, 3, 31))
		db.Model(fp).Update("is_closed", true)

		_, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			FiscalPeriodID: &fp.ID,
			Debits:         []LineInput{line(depreciation, "100")},
			Credits:        []LineInput{line(equipment, "100")},
		})
		testutil.AssertAppError(t, err, "FISCAL_PERIOD_CLOSED")
	})

	t.Run("unbalanced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2025, 4, 1), testutil.Day(2026, 3, 31))

		_, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			FiscalPeriodID: &fp.ID,
			Debits:         []LineInput{line(depreciation, "100")},
			Credits:        []LineInput{line(equipment, "99")},
		})
		testutil.AssertAppError(t, err, "UNBALANCED_ENTRY")
	})

	t.Run("records_depreciation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2025, 4, 1), testutil.Day(2026, 3, 31))
		asset := testutil.CreateTestFixedAsset(t, db, equipment.ID, "1200000", testutil.Day(2025, 10, 1), 4, "0")

		entry, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			FiscalPeriodID:     &fp.ID,
			Debits:             []LineInput{line(depreciation, "150000")},
			Credits:            []LineInput{line(equipment, "150000")},
			RecordDepreciation: true,
		})
		testutil.AssertNoError(t, err)

		var h models.DepreciationHistory
		if err := db.Where("fixed_asset_id = ? AND fiscal_period_id = ?", asset.ID, fp.ID).First(&h).Error; err != nil {
			t.Fatalf("expected depreciation history: %v", err)
		}
		testutil.AssertDecimal(t, h.Amount, "150000", "recorded depreciation")
		if h.JournalEntryID == nil || *h.JournalEntryID != entry.ID {
			t.Error("expected history linked to the adjustment entry")
		}
	})
}

func TestUpdateJournalEntry(t *testing.T) {
	t.Run("replaces_lines", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		receivable := testutil.CreateTestAccount(t, db, "売掛金", accounting.Asset)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "1000")},
			Credits: []LineInput{line(sales, "1000")},
			Actor:   "alice",
		})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateJournalEntry(entry.ID, JournalEntryInput{
			Date:    testutil.Day(2025, 5, 11),
			Summary: "corrected",
			Debits:  []LineInput{line(receivable, "1500")},
			Credits: []LineInput{line(sales, "1500")},
			Actor:   "bob",
		})
		testutil.AssertNoError(t, err)

		if updated.ID != entry.ID {
			t.Errorf("expected same entry ID, got %s", updated.ID)
		}
		if len(updated.Debits) != 1 || updated.Debits[0].AccountID != receivable.ID {
			t.Errorf("expected the debit to move to 売掛金, got %+v", updated.Debits)
		}
		testutil.AssertDecimal(t, updated.DebitTotal(), "1500", "debit total")
		if updated.CreatedBy != "alice" || updated.UpdatedBy != "bob" {
			t.Errorf("expected created_by alice and updated_by bob, got %s and %s", updated.CreatedBy, updated.UpdatedBy)
		}

		var debitCount int64
		db.Model(&models.Debit{}).Count(&debitCount)
		if debitCount != 1 {
			t.Errorf("expected old debit lines to be removed, got %d", debitCount)
		}
	})

	t.Run("unbalanced_keeps_original", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "1000")},
			Credits: []LineInput{line(sales, "1000")},
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateJournalEntry(entry.ID, JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "2000")},
			Credits: []LineInput{line(sales, "1000")},
		})
		testutil.AssertAppError(t, err, "UNBALANCED_ENTRY")

		reloaded, err := svc.GetJournalEntry(entry.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, reloaded.DebitTotal(), "1000", "debit total")
	})

	t.Run("refreshes_fixed_asset_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		entry, err := svc.CreateJournalEntry(JournalEntryInput{
			Date:       testutil.Day(2025, 10, 1),
			Debits:     []LineInput{line(equipment, "1000000")},
			Credits:    []LineInput{line(cash, "1000000")},
			FixedAsset: &FixedAssetInput{AssetNumber: "FA-100", Name: "Van", AccountID: equipment.ID, UsefulLife: 5},
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateJournalEntry(entry.ID, JournalEntryInput{
			Date:    testutil.Day(2025, 11, 1),
			Debits:  []LineInput{line(equipment, "1100000")},
			Credits: []LineInput{line(cash, "1100000")},
		})
		testutil.AssertNoError(t, err)

		var asset models.FixedAsset
		db.Where("asset_number = ?", "FA-100").First(&asset)
		testutil.AssertDecimal(t, asset.AcquisitionCost, "1100000", "acquisition cost")
		if !asset.AcquisitionDate.Equal(testutil.Day(2025, 11, 1)) {
			t.Errorf("expected acquisition date 2025-11-01, got %s", asset.AcquisitionDate)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		_, err := svc.UpdateJournalEntry("0190a1b2-0000-7000-8000-000000000002", JournalEntryInput{
			Date:    testutil.Day(2025, 5, 10),
			Debits:  []LineInput{line(cash, "1")},
			Credits: []LineInput{line(sales, "1")},
		})
		testutil.AssertAppError(t, err, "JOURNAL_ENTRY_NOT_FOUND")
	})
}

func TestDeleteJournalEntry(t *testing.T) {
	t.Run("removes_lines_and_unlinks_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		depreciation := testutil.CreateTestAccount(t, db, "減価償却費", accounting.Expense)
		equipment := testutil.CreateTestAccount(t, db, "備品", accounting.Asset)
		fp := testutil.CreateTestFiscalPeriod(t, db, testutil.Day(2025, 4, 1), testutil.Day(2026, 3, 31))
		testutil.CreateTestFixedAsset(t, db, equipment.ID, "1200000", testutil.Day(2025, 10, 1), 4, "0")

		entry, err := svc.CreateAdjustmentEntry(JournalEntryInput{
			FiscalPeriodID:     &fp.ID,
			Debits:             []LineInput{line(depreciation, "150000")},
			Credits:            []LineInput{line(equipment, "150000")},
			RecordDepreciation: true,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteJournalEntry(entry.ID))

		_, err = svc.GetJournalEntry(entry.ID)
		testutil.AssertAppError(t, err, "JOURNAL_ENTRY_NOT_FOUND")

		var lines int64
		db.Model(&models.Debit{}).Count(&lines)
		if lines != 0 {
			t.Errorf("expected debit lines removed, got %d", lines)
		}

		var h models.DepreciationHistory
		if err := db.First(&h).Error; err != nil {
			t.Fatalf("expected depreciation history to survive: %v", err)
		}
		if h.JournalEntryID != nil {
			t.Error("expected depreciation history to be unlinked")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)

		err := svc.DeleteJournalEntry("0190a1b2-0000-7000-8000-000000000003")
		testutil.AssertAppError(t, err, "JOURNAL_ENTRY_NOT_FOUND")
	})
}

func TestListJournalEntries(t *testing.T) {
	t.Run("newest_first_with_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		bank := testutil.CreateTestAccount(t, db, "普通預金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 5, 1), cash, sales, "100")
		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 5, 20), bank, sales, "200")
		latest := testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 3), cash, sales, "300")

		result, err := svc.ListJournalEntries(pagination.PageRequest{}, JournalEntryFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Fatalf("expected 3 entries, got %d", result.TotalItems)
		}
		if result.Data[0].ID != latest.ID {
			t.Errorf("expected newest entry first, got %s", result.Data[0].Date)
		}

		result, err = svc.ListJournalEntries(pagination.PageRequest{}, JournalEntryFilter{AccountID: &cash.ID})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 entries touching 現金, got %d", result.TotalItems)
		}

		from := testutil.Day(2025, 5, 10)
		to := testutil.Day(2025, 5, 31)
		result, err = svc.ListJournalEntries(pagination.PageRequest{}, JournalEntryFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 entry in range, got %d", result.TotalItems)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		for i := 1; i <= 5; i++ {
			testutil.PostSimpleEntry(t, db, testutil.Day(2025, 5, i), cash, sales, "10")
		}

		result, err := svc.ListJournalEntries(pagination.PageRequest{Page: 2, PageSize: 2}, JournalEntryFilter{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", result.TotalPages)
		}
	})

	t.Run("oldest_first_on_request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 3), cash, sales, "300")
		first := testutil.PostSimpleEntry(t, db, testutil.Day(2025, 5, 1), cash, sales, "100")
		second := testutil.PostSimpleEntry(t, db, testutil.Day(2025, 5, 1), cash, sales, "200")

		result, err := svc.ListJournalEntries(pagination.PageRequest{Order: "asc", PageSize: 2}, JournalEntryFilter{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 {
			t.Fatalf("expected 2 items, got %d", len(result.Data))
		}
		if result.Data[0].ID != first.ID || result.Data[1].ID != second.ID {
			t.Errorf("expected same-day entries in posting order, got %s then %s", result.Data[0].ID, result.Data[1].ID)
		}
	})
}
