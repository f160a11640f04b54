// Package contacts exposes the candidate recipients of a payment request.
package contacts

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/platform"
	"github.com/mmynk/splitpay/internal/storage"
)

// maxFuzzyDistance is the largest edit distance accepted by fuzzy search.
const maxFuzzyDistance = 2

const (
	noticePermissionDenied = "Contacts permission denied. Grant access to pick recipients."
	noticeUnavailable      = "Contacts are unavailable right now."
)

// Provider lists the device contacts.
// It returns platform.ErrPermissionDenied when access has not been granted.
type Provider interface {
	Contacts(ctx context.Context) ([]models.Recipient, error)
}

// StoreProvider serves contacts from a storage.ContactStore.
type StoreProvider struct {
	Store storage.ContactStore
}

// Contacts lists every stored contact.
func (p StoreProvider) Contacts(ctx context.Context) ([]models.Recipient, error) {
	return p.Store.ListContacts(ctx)
}

// Directory filters provider contacts down to usable recipients.
type Directory struct {
	provider Provider
	logger   *slog.Logger
}

// NewDirectory creates a Directory over provider.
func NewDirectory(provider Provider, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{provider: provider, logger: logger}
}

// Candidates returns the contacts that have a phone number.
// Provider failures never surface as errors: the list is empty and a
// user-visible notice explains why.
func (d *Directory) Candidates(ctx context.Context) ([]models.Recipient, []string) {
	all, err := d.provider.Contacts(ctx)
	if err != nil {
		if errors.Is(err, platform.ErrPermissionDenied) {
			d.logger.WarnContext(ctx, "Contacts permission denied")
			return []models.Recipient{}, []string{noticePermissionDenied}
		}
		d.logger.ErrorContext(ctx, "Failed to load contacts", "error", err)
		return []models.Recipient{}, []string{noticeUnavailable}
	}

	candidates := make([]models.Recipient, 0, len(all))
	for _, r := range all {
		if r.HasPhoneNumber() {
			candidates = append(candidates, r)
		}
	}
	return candidates, nil
}

// Search filters candidates by display name. Blank text matches everything.
// Substring matches come first, in input order. With fuzzy set, names with a
// word close to the query are appended, closest first.
func Search(candidates []models.Recipient, text string, fuzzy bool) []models.Recipient {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return append([]models.Recipient{}, candidates...)
	}

	var matches []models.Recipient
	type near struct {
		r    models.Recipient
		dist int
	}
	var nearby []near

	for _, r := range candidates {
		name := strings.ToLower(r.DisplayName)
		if strings.Contains(name, query) {
			matches = append(matches, r)
			continue
		}
		if !fuzzy {
			continue
		}
		if dist, ok := wordDistance(name, query); ok {
			nearby = append(nearby, near{r: r, dist: dist})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, n := range nearby {
		matches = append(matches, n.r)
	}
	if matches == nil {
		matches = []models.Recipient{}
	}
	return matches
}

// wordDistance returns the smallest edit distance between query and any word
// of name, if it is within maxFuzzyDistance.
func wordDistance(name, query string) (int, bool) {
	best := -1
	for _, word := range strings.Fields(name) {
		d := levenshtein.ComputeDistance(word, query)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 || best > maxFuzzyDistance {
		return 0, false
	}
	return best, true
}
