package extractor

import (
	"errors"
	"time"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// envelopeTag is the root element of an Experian consumer bureau report.
const envelopeTag = "INProfileResponse"

// ErrNotBureauReport indicates a well-formed XML document that is not a
// bureau report (wrong envelope).
var ErrNotBureauReport = errors.New("invalid XML structure: " + envelopeTag + " not found")

// Extract runs the full pipeline over a raw report document: parse the XML
// into a generic tree, locate the identity fields through their fallback
// chains, translate coded accounts and compute aggregates, and assemble the
// normalized record.
//
// Malformed XML and an unresolvable applicant name are the only fatal
// failures; missing optional sections degrade to documented defaults, and a
// single bad account is dropped without aborting the batch. No partial
// record is ever returned alongside an error.
func Extract(xmlData []byte, fileName string) (*models.CreditReport, error) {
	doc, err := xmltree.Parse(xmlData)
	if err != nil {
		return nil, err
	}

	root := doc.Get(envelopeTag)
	if root == nil {
		return nil, ErrNotBureauReport
	}

	basicDetails := locateBasicDetails(root)
	if basicDetails.Name == "" {
		return nil, models.ErrMissingName
	}

	accounts := root.Get("CAIS_Account").List("CAIS_Account_DETAILS")

	report := &models.CreditReport{
		BasicDetails:   basicDetails,
		ReportSummary:  buildSummary(root, accounts),
		CreditAccounts: translateAccounts(accounts),
		Addresses:      extractAddresses(accounts),
		FileName:       fileName,
		UploadDate:     time.Now().UTC(),
	}

	utils.GetLogger().Info("Extracted credit report",
		utils.String("fileName", fileName),
		utils.String("name", report.BasicDetails.Name),
		utils.Int("accounts", len(report.CreditAccounts)),
		utils.Int("creditScore", report.BasicDetails.CreditScore))

	return report, nil
}
