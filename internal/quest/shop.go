package quest

import (
	"fmt"

	"github.com/julianstephens/questlog/internal/models"
)

// Shop is the catalog of rewards purchasable with coins
var Shop = []models.ShopItem{
	{ID: "snack", Name: "Snack treat", Cost: 50},
	{ID: "yt30", Name: "30 minutes of videos", Cost: 100},
	{ID: "weekend", Name: "Special weekend activity", Cost: 200},
}

// FindShopItem looks up a shop item by id
func FindShopItem(id string) (models.ShopItem, bool) {
	for _, item := range Shop {
		if item.ID == id {
			return item, true
		}
	}
	return models.ShopItem{}, false
}

// Buy spends coins on a shop item
func Buy(state models.QuestState, itemID string) (models.QuestState, models.ShopItem, error) {
	item, ok := FindShopItem(itemID)
	if !ok {
		return state, models.ShopItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if state.Coins < item.Cost {
		return state, item, fmt.Errorf("%w: %s costs %d, balance is %d", ErrInsufficientCoins, item.Name, item.Cost, state.Coins)
	}
	next := state.Clone()
	next.Coins -= item.Cost
	return next, item, nil
}
