// Package extractor turns a parsed bureau report tree into a normalized
// credit report record.
package extractor

import (
	"strings"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
)

// statusLabels maps bureau Account_Status codes to normalized statuses.
// Codes outside the table map to StatusUnknown, never to an error.
var statusLabels = map[string]models.AccountStatus{
	"11": models.StatusActive,
	"13": models.StatusClosed,
	"21": models.StatusActive,
	"22": models.StatusActive,
	"23": models.StatusActive,
	"24": models.StatusActive,
	"25": models.StatusActive,
	"53": models.StatusDefaulted,
	"71": models.StatusActive,
	"78": models.StatusSettled,
	"80": models.StatusWrittenOff,
	"82": models.StatusWrittenOff,
	"83": models.StatusWrittenOff,
	"84": models.StatusWrittenOff,
}

// activeStatusCodes and closedStatusCodes are the buckets used for the
// summary counts. They are narrower than statusLabels on purpose: terminal
// states like written-off or settled count toward the total only.
var (
	activeStatusCodes = map[string]bool{"11": true, "21": true, "71": true}
	closedStatusCodes = map[string]bool{"13": true}
)

// accountTypeLabels maps two-digit bureau Account_Type codes to labels.
var accountTypeLabels = map[string]string{
	"00": "Auto Loan",
	"01": "Housing Loan",
	"02": "Property Loan",
	"03": "Loan Against Shares",
	"04": "Personal Loan",
	"05": "Consumer Loan",
	"06": "Gold Loan",
	"07": "Education Loan",
	"08": "Loan to Professional",
	"09": "Credit Card",
	"10": "Credit Card",
	"11": "Leasing",
	"12": "Overdraft",
	"13": "Two-wheeler Loan",
	"14": "Non-funded Credit Facility",
	"15": "Loan Against Bank Deposits",
	"16": "Fleet Card",
	"17": "Commercial Vehicle Loan",
	"18": "Telco - Wireless",
	"19": "Telco - Broadband",
	"20": "Telco - Landline",
	"31": "Secured Credit Card",
	"32": "Used Car Loan",
	"33": "Construction Equipment Loan",
	"34": "Tractor Loan",
	"35": "Corporate Credit Card",
	"36": "Kisan Credit Card",
	"37": "Loan on Credit Card",
	"38": "Prime Minister Jaan Dhan Yojana",
	"39": "Mudra Loans",
	"43": "Microfinance - Business Loan",
	"44": "Microfinance - Personal Loan",
	"45": "Microfinance - Housing Loan",
	"47": "Microfinance - Others",
	"51": "Business Loan - General",
	"52": "Business Loan - Priority Sector - Small Business",
	"53": "Business Loan - Priority Sector - Agriculture",
	"54": "Business Loan - Priority Sector - Others",
	"55": "Business Loan - Secured",
	"56": "Business Loan - Unsecured",
	"59": "Business Non-funded Credit Facility - General",
	"61": "Business Non-funded Credit Facility - Priority Sector - Small Business",
}

// portfolioTypeLabels maps Portfolio_Type letter codes to the qualifier
// appended to the account-type label.
var portfolioTypeLabels = map[string]string{
	"R": "Revolving",
	"I": "Installment",
	"M": "Mortgage",
	"O": "Other",
}

// securedPortfolioCodes marks the portfolio types treated as secured in the
// fallback balance split.
var securedPortfolioCodes = map[string]bool{"I": true, "M": true}

// statusFromCode translates an Account_Status code, falling back to
// StatusUnknown for anything outside the table.
func statusFromCode(code string) models.AccountStatus {
	if status, ok := statusLabels[code]; ok {
		return status
	}
	return models.StatusUnknown
}

// accountTypeLabel translates an Account_Type code. Unknown codes echo the
// raw code in the label so the original classification stays auditable.
func accountTypeLabel(code string) string {
	if code == "" {
		code = "00"
	}
	if label, ok := accountTypeLabels[code]; ok {
		return label
	}
	return "Account Type " + code
}

// accountTypeDescription composes the display type: the account-type label,
// qualified with the portfolio-type label in parentheses when one applies.
func accountTypeDescription(typeCode, portfolioCode string) string {
	label := accountTypeLabel(strings.TrimSpace(typeCode))
	if qualifier, ok := portfolioTypeLabels[strings.TrimSpace(portfolioCode)]; ok {
		return label + " (" + qualifier + ")"
	}
	return label
}
