package service

import (
	"sort"

	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/domain"
)

func sortTeams(teams []*domain.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID < teams[j].ID
	})
}

func sortCards(cards []contract.KanbanCard) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].FeatureKey < cards[j].FeatureKey
	})
}

func sortStrings(keys []string) {
	sort.Strings(keys)
}
