package signup

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
)

// Aggregate derives per-category counts from the signup list.
// Pure function of the list; records with unknown categories count toward the
// total only.
func Aggregate(records []api.SignupRecord) api.Counts {
	counts := api.Counts{Total: len(records)}
	for i := range records {
		switch strings.ToLower(records[i].Category) {
		case constants.CategoryAndroid:
			counts.Android++
		case constants.CategoryIOS:
			counts.IOS++
		case constants.CategoryGoogle:
			counts.Google++
		}
	}
	return counts
}

// DefaultQuota returns the static per-category soft display limits.
func DefaultQuota() api.Quota {
	return api.Quota{
		Android: constants.QuotaAndroid,
		IOS:     constants.QuotaIOS,
		Google:  constants.QuotaGoogle,
		Total:   constants.QuotaAndroid + constants.QuotaIOS + constants.QuotaGoogle,
	}
}

// csvHeader is the fixed header row of the admin export.
var csvHeader = []string{"email", "category", "ts", "country", "ua"}

// WriteCSV serializes the signup list as CSV in stored order.
// Fields containing commas, quotes or newlines are quoted with internal quotes
// doubled, so the output round-trips through any RFC 4180 reader.
func WriteCSV(w io.Writer, records []api.SignupRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i := range records {
		row := []string{
			records[i].Email,
			records[i].Category,
			records[i].Timestamp,
			records[i].Country,
			records[i].UserAgent,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
