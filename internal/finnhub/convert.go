package finnhub

import (
	"fmt"
	"strings"

	"github.com/rickgao/tech-calendar/internal/model"
)

// SourceTag identifies Finnhub-sourced events in feeds and storage.
const SourceTag = "Finnhub"

// ToEvent normalizes an API record into the canonical event shape. Records
// with missing or malformed required fields return *model.ValidationError
// and are skipped by callers.
func (i EarningsItem) ToEvent() (model.EarningsEvent, error) {
	ticker := strings.ToUpper(strings.TrimSpace(i.Symbol))
	if ticker == "" {
		return model.EarningsEvent{}, &model.ValidationError{Field: "symbol", Reason: "is empty"}
	}

	if i.Date == "" {
		return model.EarningsEvent{}, &model.ValidationError{Field: "date", Reason: "is empty"}
	}
	date, err := model.ParseDate(i.Date)
	if err != nil {
		return model.EarningsEvent{}, &model.ValidationError{
			Field:  "date",
			Reason: fmt.Sprintf("%q is not an ISO date", i.Date),
		}
	}

	if i.Quarter < 1 || i.Quarter > 4 {
		return model.EarningsEvent{}, &model.ValidationError{
			Field:  "quarter",
			Reason: fmt.Sprintf("%d is out of range", i.Quarter),
		}
	}

	return model.EarningsEvent{
		Ticker:          ticker,
		Date:            date,
		Quarter:         i.Quarter,
		FiscalYear:      i.Year,
		EPSEstimate:     i.EPSEstimate.Ptr(),
		RevenueEstimate: i.RevenueEstimate.Ptr(),
		Source:          SourceTag,
	}, nil
}
