package normalizer

import (
	"strings"

	"storescrape/internal/models"
	"storescrape/pkg/utils"
)

// Transformer tidies adapter output before validation.
type Transformer struct {
	replacer *strings.Replacer
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		replacer: strings.NewReplacer("\u00a0", " ", "\u200b", ""),
	}
}

// Transform collapses whitespace in text fields and substitutes sentinels for
// empty phones and working hours. The input record is not modified.
func (t *Transformer) Transform(r models.Record) models.Record {
	out := models.Record{
		Address: t.clean(r.Address),
		LatLon:  r.LatLon,
		Name:    t.clean(r.Name),
		Phones:  t.clean(r.Phones),
	}

	if out.Phones == "" {
		out.Phones = models.PhonesUnavailable
	}

	hours := make([]string, 0, len(r.WorkingHours))

	for _, h := range r.WorkingHours {
		if h = t.clean(h); h != "" {
			hours = append(hours, h)
		}
	}

	if len(hours) == 0 {
		hours = models.ClosedHours()
	}

	out.WorkingHours = hours

	return out
}

func (t *Transformer) clean(s string) string {
	return utils.NormalizeWhitespace(t.replacer.Replace(s))
}
