package drill

import (
	"context"
	"strings"

	"github.com/fbngrm/fr-audio/pkg/translate"
)

// FillMissing completes records that have French but no English text, first
// from the cached translation table, then through the translator if one is
// given. Newly translated pairs are added to the table so the caller can
// persist them. Existing English text is never overwritten.
func FillMissing(ctx context.Context, records []Record, table *translate.Table, client translate.Client) ([]Record, error) {
	out := make([]Record, len(records))
	copy(out, records)

	for i := range out {
		if strings.TrimSpace(out[i].English) != "" {
			continue
		}
		fr := strings.TrimSpace(out[i].French)
		if fr == "" {
			continue
		}
		if en := table.Lookup(fr); en != "" {
			out[i].English = en
			continue
		}
		if client == nil {
			continue
		}
		en, err := client.Translate(ctx, fr)
		if err != nil {
			return nil, err
		}
		out[i].English = en
		table.Add(fr, en)
	}
	return out, nil
}
