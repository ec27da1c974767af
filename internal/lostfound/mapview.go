package lostfound

import (
	"context"

	"github.com/campuslf/lostfound/internal/location"
	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
)

// MapGroup is one map pin with the items found there. Mapped is false for
// groups whose location is not in the registry; they have no coordinates
// and get no pin.
type MapGroup struct {
	Location location.Location `json:"location"`
	Mapped   bool              `json:"mapped"`
	Items    []model.FoundItem `json:"items"`
}

// MapGroups buckets approved and claimed items by location. Every registry
// location gets a group, in registry order, even when empty. Items whose
// location id is not in the registry get trailing groups of their own so
// nothing is dropped. Items keep newest-first order within a group and
// carry the resolved location id.
func (s *Service) MapGroups(ctx context.Context) ([]MapGroup, error) {
	items, err := store.ListItems(ctx, s.DB, store.ItemFilter{
		Statuses: []string{model.ItemStatusApproved, model.ItemStatusClaimed},
	})
	if err != nil {
		return nil, err
	}

	locs := s.Locations.All()
	groups := make([]MapGroup, 0, len(locs))
	index := make(map[string]int, len(locs))
	for _, loc := range locs {
		index[loc.ID] = len(groups)
		groups = append(groups, MapGroup{Location: loc, Mapped: true, Items: []model.FoundItem{}})
	}

	for _, item := range items {
		id := s.Locations.Resolve(item.LocationID, item.LocationFound)
		item.LocationID = id

		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, MapGroup{
				Location: location.Location{ID: id, Name: id},
				Items:    []model.FoundItem{},
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups, nil
}
