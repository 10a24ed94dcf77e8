// Package models defines the data structures for the credit report analyzer.
package models

import (
	"time"
)

// AccountStatus is the normalized status of a credit account.
type AccountStatus string

const (
	StatusActive     AccountStatus = "Active"
	StatusClosed     AccountStatus = "Closed"
	StatusPending    AccountStatus = "Pending"
	StatusDefaulted  AccountStatus = "Defaulted"
	StatusSettled    AccountStatus = "Settled"
	StatusWrittenOff AccountStatus = "Written Off"
	StatusUnknown    AccountStatus = "Unknown"
)

// ValidAccountStatuses returns all normalized account status values.
func ValidAccountStatuses() []AccountStatus {
	return []AccountStatus{
		StatusActive,
		StatusClosed,
		StatusPending,
		StatusDefaulted,
		StatusSettled,
		StatusWrittenOff,
		StatusUnknown,
	}
}

// IsValid checks if the account status is a normalized value.
func (s AccountStatus) IsValid() bool {
	for _, valid := range ValidAccountStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// AddressType classifies an extracted address.
type AddressType string

const (
	AddressPermanent AddressType = "Permanent"
	AddressCurrent   AddressType = "Current"
	AddressOffice    AddressType = "Office"
)

// Credit score band thresholds used by the statistics endpoint.
const (
	ScoreBandExcellent = 750
	ScoreBandGood      = 650
)

// BasicDetails holds the applicant identity extracted from a bureau report.
type BasicDetails struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	PAN         string `json:"pan"`
	CreditScore int    `json:"creditScore"`
}

// ReportSummary holds the aggregate figures computed across all accounts.
//
// ActiveAccounts+ClosedAccounts may be less than TotalAccounts: accounts in
// terminal states such as written-off or settled are counted in the total
// but belong to neither bucket.
type ReportSummary struct {
	TotalAccounts      int   `json:"totalAccounts"`
	ActiveAccounts     int   `json:"activeAccounts"`
	ClosedAccounts     int   `json:"closedAccounts"`
	CurrentBalance     int64 `json:"currentBalance"`
	SecuredAmount      int64 `json:"securedAmount"`
	UnsecuredAmount    int64 `json:"unsecuredAmount"`
	Last7DaysEnquiries int   `json:"last7DaysEnquiries"`
}

// CreditAccount is one normalized tradeline from the report.
//
// AccountNumber is the masked display form; the raw number is discarded
// during extraction and never stored. Dates are DD/MM/YYYY display strings,
// nil when the source carried the all-zero sentinel or a malformed value.
type CreditAccount struct {
	Type           string        `json:"type"`
	Bank           string        `json:"bank"`
	AccountNumber  string        `json:"accountNumber"`
	CurrentBalance int64         `json:"currentBalance"`
	AmountOverdue  int64         `json:"amountOverdue"`
	CreditLimit    int64         `json:"creditLimit"`
	Status         AccountStatus `json:"status"`
	OpenDate       *string       `json:"openDate"`
	DateReported   *string       `json:"dateReported"`
	DateClosed     *string       `json:"dateClosed"`
}

// Address is one extracted applicant address.
type Address struct {
	Type    AddressType `json:"type"`
	Address string      `json:"address"`
}

// CreditReport is the persisted aggregate produced by one successful upload.
type CreditReport struct {
	ID             string          `json:"id,omitempty"`
	BasicDetails   BasicDetails    `json:"basicDetails"`
	ReportSummary  ReportSummary   `json:"reportSummary"`
	CreditAccounts []CreditAccount `json:"creditAccounts"`
	Addresses      []Address       `json:"addresses"`
	FileName       string          `json:"fileName"`
	UploadDate     time.Time       `json:"uploadDate"`
}

// ScoreDistribution buckets report counts by credit score band.
type ScoreDistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	NeedsImprovement int `json:"needsImprovement"`
}

// Statistics is the aggregate view over all stored reports.
type Statistics struct {
	TotalReports            int               `json:"totalReports"`
	AvgCreditScore          int               `json:"avgCreditScore"`
	TotalBalance            int64             `json:"totalBalance"`
	CreditScoreDistribution ScoreDistribution `json:"creditScoreDistribution"`
}
