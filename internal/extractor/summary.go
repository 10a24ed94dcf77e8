package extractor

import (
	"math"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// buildSummary computes the aggregate figures for the report.
//
// Balances come from the precomputed CAIS_Summary block when it carries a
// nonzero total. A zero total is treated as "block absent or not populated"
// and triggers the fallback path: total is the sum of per-account balances,
// secured is the sum over installment/mortgage portfolios, and unsecured is
// the remainder rather than an independent sum, so the split always
// reconciles to the total.
func buildSummary(root *xmltree.Node, accounts []*xmltree.Node) models.ReportSummary {
	summary := models.ReportSummary{
		TotalAccounts: len(accounts),
	}

	for _, account := range accounts {
		status := account.Value("Account_Status")
		switch {
		case activeStatusCodes[status]:
			summary.ActiveAccounts++
		case closedStatusCodes[status]:
			summary.ClosedAccounts++
		}
	}

	outstanding := root.Path("CAIS_Account", "CAIS_Summary", "Total_Outstanding_Balance")
	currentBalance := amountOrZero(outstanding.Value("Outstanding_Balance_All"))
	securedAmount := amountOrZero(outstanding.Value("Outstanding_Balance_Secured"))
	unsecuredAmount := amountOrZero(outstanding.Value("Outstanding_Balance_UnSecured"))

	if currentBalance == 0 {
		currentBalance, securedAmount = 0, 0
		for _, account := range accounts {
			balance := amountOrZero(account.Value("Current_Balance"))
			currentBalance += balance
			if securedPortfolioCodes[account.Value("Portfolio_Type")] {
				securedAmount += balance
			}
		}
		unsecuredAmount = currentBalance - securedAmount
		if unsecuredAmount < 0 {
			utils.GetLogger().Warn("Secured balances exceed fallback total, clamping unsecured to zero",
				utils.Float64("currentBalance", currentBalance),
				utils.Float64("securedAmount", securedAmount))
			unsecuredAmount = 0
		}
	}

	summary.CurrentBalance = int64(math.Round(currentBalance))
	summary.SecuredAmount = int64(math.Round(securedAmount))
	summary.UnsecuredAmount = int64(math.Round(unsecuredAmount))

	// Recent enquiries live in their own top-level block, independent of
	// the account list.
	summary.Last7DaysEnquiries = intOrZero(root.Value("TotalCAPS_Summary", "TotalCAPSLast7Days"))

	return summary
}
