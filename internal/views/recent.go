package views

import "github.com/tabula-app/tabula/pkg/types"

// RecentUrls returns up to limit URLs ordered by most recent click
// descending. URLs that have been deleted since they were clicked are
// skipped; further-back clicks fill the remaining slots. Exact-timestamp
// ties order by URL ID ascending, which the click log guarantees.
func (s *Service) RecentUrls(limit int) ([]*types.Url, error) {
	results := []*types.Url{}
	if limit <= 0 {
		return results, nil
	}

	clicks, err := s.store.Clicks()
	if err != nil {
		return nil, err
	}
	last, err := clicks.LastClicks()
	if err != nil {
		return nil, err
	}

	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	for _, lc := range last {
		u, ok, err := s.resolveUrl(urls, lc.UrlID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		results = append(results, u)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
