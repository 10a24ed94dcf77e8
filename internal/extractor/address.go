package extractor

import (
	"strings"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/models"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/xmltree"
)

// addressUnavailable is emitted when no holder block carries a usable
// address.
const addressUnavailable = "Address not available in XML"

// addressComponents lists the holder address fields in display order.
var addressComponents = []string{
	"First_Line_Of_Address_non_normalized",
	"Second_Line_Of_Address_non_normalized",
	"Third_Line_Of_Address_non_normalized",
	"City_non_normalized",
	"State_non_normalized",
	"ZIP_Postal_Code_non_normalized",
}

// extractAddresses builds the applicant address from the first holder block
// that yields a non-empty joined string, so identical blocks on later
// accounts collapse into the single entry. When nothing usable exists a
// fixed sentinel address is emitted instead. Only the permanent address is
// extracted; the result always has exactly one entry.
func extractAddresses(accounts []*xmltree.Node) []models.Address {
	for _, account := range accounts {
		details := account.Get("CAIS_Holder_Address_Details")
		if details == nil {
			continue
		}

		var lines []string
		for _, component := range addressComponents {
			if line := strings.TrimSpace(details.Value(component)); line != "" {
				lines = append(lines, line)
			}
		}

		fullAddress := strings.Join(lines, ", ")
		if fullAddress == "" {
			continue
		}

		return []models.Address{{Type: models.AddressPermanent, Address: fullAddress}}
	}

	return []models.Address{{Type: models.AddressPermanent, Address: addressUnavailable}}
}
