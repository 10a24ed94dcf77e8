package extractor

import (
	"fmt"
	"math"
	"strings"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// translateAccounts converts raw account nodes into normalized tradelines.
// Translation is fail-soft per item: an account that cannot be formatted is
// logged and dropped, and the remaining accounts still process. The output
// is therefore never longer than the input.
func translateAccounts(accounts []*xmltree.Node) []models.CreditAccount {
	translated := make([]models.CreditAccount, 0, len(accounts))
	logger := utils.GetLogger()

	for i, account := range accounts {
		creditAccount, err := translateAccount(account)
		if err != nil {
			logger.Warn("Skipping account that failed to format",
				utils.Int("index", i),
				utils.Error(err))
			continue
		}
		translated = append(translated, creditAccount)
	}

	return translated
}

func translateAccount(account *xmltree.Node) (models.CreditAccount, error) {
	currentBalance, err := parseAmount(account.Value("Current_Balance"))
	if err != nil {
		return models.CreditAccount{}, fmt.Errorf("current balance: %w", err)
	}

	amountOverdue, err := parseAmount(account.Value("Amount_Past_Due"))
	if err != nil {
		return models.CreditAccount{}, fmt.Errorf("amount past due: %w", err)
	}

	// Reports carry either an explicit credit limit or, for term loans,
	// only the original sanctioned amount.
	creditLimitRaw := account.Value("Credit_Limit_Amount")
	if strings.TrimSpace(creditLimitRaw) == "" {
		creditLimitRaw = account.Value("Highest_Credit_or_Original_Loan_Amount")
	}
	creditLimit, err := parseAmount(creditLimitRaw)
	if err != nil {
		return models.CreditAccount{}, fmt.Errorf("credit limit: %w", err)
	}

	bank := strings.TrimSpace(account.Value("Subscriber_Name"))
	if bank == "" {
		bank = "Unknown Bank"
	}

	accountNumber := strings.TrimSpace(account.Value("Account_Number"))
	if accountNumber == "" {
		accountNumber = "XXXX"
	}

	return models.CreditAccount{
		Type:           accountTypeDescription(account.Value("Account_Type"), account.Value("Portfolio_Type")),
		Bank:           bank,
		AccountNumber:  maskAccountNumber(accountNumber),
		CurrentBalance: int64(math.Round(currentBalance)),
		AmountOverdue:  int64(math.Round(amountOverdue)),
		CreditLimit:    int64(math.Round(creditLimit)),
		Status:         statusFromCode(account.Value("Account_Status")),
		OpenDate:       formatDate(account.Value("Open_Date")),
		DateReported:   formatDate(account.Value("Date_Reported")),
		DateClosed:     formatDate(account.Value("Date_Closed")),
	}, nil
}
