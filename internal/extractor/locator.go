package extractor

import (
	"strconv"
	"strings"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// notAvailable is the sentinel returned for optional identity fields that
// no report variant populated.
const notAvailable = "N/A"

// fieldChain resolves one logical field through an ordered list of candidate
// paths (relative to the report root). The same logical field lives under
// different sections depending on which report variant populated it: fresh
// applications fill Current_Application, bureau records fill the CAIS holder
// blocks, and either may be missing. The first non-empty value wins; an
// exhausted chain yields the documented default.
type fieldChain struct {
	paths      [][]string
	defaultVal string
}

func (c fieldChain) resolve(root *xmltree.Node) string {
	for _, path := range c.paths {
		if value := strings.TrimSpace(root.Value(path...)); value != "" {
			return value
		}
	}
	return c.defaultVal
}

// Paths through a CAIS_Account_DETAILS step resolve against the first
// account, which is the holder record bureau reports populate most fully.
var (
	firstNameChain = fieldChain{paths: [][]string{
		{"Current_Application", "Current_Application_Details", "Current_Applicant_Details", "First_Name"},
		{"CAIS_Account", "CAIS_Account_DETAILS", "CAIS_Holder_Details", "First_Name_Non_Normalized"},
	}}

	lastNameChain = fieldChain{paths: [][]string{
		{"Current_Application", "Current_Application_Details", "Current_Applicant_Details", "Last_Name"},
		{"CAIS_Account", "CAIS_Account_DETAILS", "CAIS_Holder_Details", "Surname_Non_Normalized"},
	}}

	mobileChain = fieldChain{paths: [][]string{
		{"Current_Application", "Current_Application_Details", "Current_Applicant_Details", "MobilePhoneNumber"},
		{"CAIS_Account", "CAIS_Account_DETAILS", "CAIS_Holder_Phone_Details", "Mobile_Telephone_Number"},
		{"CAIS_Account", "CAIS_Account_DETAILS", "CAIS_Holder_Phone_Details", "Telephone_Number"},
	}, defaultVal: notAvailable}

	panChain = fieldChain{paths: [][]string{
		{"CAIS_Account", "CAIS_Account_DETAILS", "CAIS_Holder_Details", "Income_TAX_PAN"},
		{"Current_Application", "Current_Application_Details", "Current_Applicant_Details", "IncomeTaxPan"},
	}, defaultVal: notAvailable}

	scoreChain = fieldChain{paths: [][]string{
		{"SCORE", "BureauScore"},
	}, defaultVal: "0"}
)

// locateBasicDetails resolves the applicant identity fields against the
// report root. Name may come back empty; the assembler treats that as fatal.
func locateBasicDetails(root *xmltree.Node) models.BasicDetails {
	firstName := firstNameChain.resolve(root)
	lastName := lastNameChain.resolve(root)
	fullName := strings.ToUpper(strings.TrimSpace(firstName + " " + lastName))

	score, err := strconv.Atoi(scoreChain.resolve(root))
	if err != nil || score < 0 {
		score = 0
	}

	return models.BasicDetails{
		Name:        fullName,
		Mobile:      mobileChain.resolve(root),
		PAN:         strings.ToUpper(panChain.resolve(root)),
		CreditScore: score,
	}
}
